package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/upb/rag-gateway/services/vectorstore"
)

// returnProperties is the fixed property set requested for every chunk.
var returnProperties = []string{"text", "doc_id", "chunk_id", "source", "page", "mime_type"}

// Config contains connection details for a Weaviate vector store
type Config struct {
	URL            string
	Collection     string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// Client is a minimal GraphQL client for Weaviate nearest-neighbor
// queries. Each NearVector call builds a fresh HTTP client, so no
// connection is reused across calls.
type Client struct {
	config Config
}

// NewClient creates a new Weaviate client
func NewClient(config Config) *Client {
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 60 * time.Second
	}
	return &Client{config: config}
}

// NearVector runs a nearest-neighbor query against the configured
// collection, requesting at most limit results ordered by distance,
// together with the fixed property set and the distance metadata.
func (c *Client) NearVector(ctx context.Context, vector []float32, limit int) ([]vectorstore.Object, error) {
	query := buildNearVectorQuery(c.config.Collection, vector, limit)

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL+"/v1/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.newHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("weaviate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read weaviate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weaviate query failed: %s", resp.Status)
	}

	var out graphqlResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode weaviate response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("weaviate graphql error: %s", out.Errors[0].Message)
	}

	raw := out.Data.Get[c.config.Collection]
	objects := make([]vectorstore.Object, 0, len(raw))
	for _, item := range raw {
		objects = append(objects, toObject(item))
	}
	return objects, nil
}

// newHTTPClient builds the per-call client carrying the fixed
// connect/read timeout policy.
func (c *Client) newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: c.config.ReadTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: c.config.ConnectTimeout}).DialContext,
		},
	}
}

func buildNearVectorQuery(collection string, vector []float32, limit int) string {
	var vec strings.Builder
	for i, v := range vector {
		if i > 0 {
			vec.WriteByte(',')
		}
		vec.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}

	return fmt.Sprintf(
		"{ Get { %s(nearVector: {vector: [%s]}, limit: %d) { %s _additional { distance } } } }",
		collection, vec.String(), limit, strings.Join(returnProperties, " "),
	)
}

func toObject(item map[string]interface{}) vectorstore.Object {
	obj := vectorstore.Object{Properties: make(map[string]interface{}, len(item))}
	for k, v := range item {
		if k == "_additional" {
			if additional, ok := v.(map[string]interface{}); ok {
				if d, ok := additional["distance"].(float64); ok {
					distance := d
					obj.Distance = &distance
				}
			}
			continue
		}
		obj.Properties[k] = v
	}
	return obj
}

type graphqlResponse struct {
	Data struct {
		Get map[string][]map[string]interface{} `json:"Get"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}
