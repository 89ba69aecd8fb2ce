package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/tidwall/gjson"
)

const (
	ipfsScheme      = "ipfs://"
	dataJSONBase64  = "data:application/json;base64,"
	maxMetadataSize = 1 << 20
)

// MetadataClient fetches ERC-721 metadata documents
type MetadataClient struct {
	gateway string
	client  *http.Client
}

// NewMetadataClient creates a client rewriting ipfs:// URIs to gateway
func NewMetadataClient(gateway string, timeout time.Duration) *MetadataClient {
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &MetadataClient{
		gateway: gateway,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ResolveURI rewrites an ipfs:// URI to the HTTP gateway
func (c *MetadataClient) ResolveURI(uri string) string {
	if strings.HasPrefix(uri, ipfsScheme) {
		return c.gateway + strings.TrimPrefix(uri, ipfsScheme)
	}
	return uri
}

// Fetch downloads and parses the metadata document at uri
func (c *MetadataClient) Fetch(ctx context.Context, uri string) (*model.TokenMetadata, error) {
	if uri == "" {
		return nil, errors.New("empty token URI")
	}

	var body []byte
	if strings.HasPrefix(uri, dataJSONBase64) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataJSONBase64))
		if err != nil {
			return nil, fmt.Errorf("failed to decode inline metadata: %w", err)
		}
		body = decoded
	} else {
		fetched, err := c.get(ctx, c.ResolveURI(uri))
		if err != nil {
			return nil, err
		}
		body = fetched
	}

	return c.parse(body)
}

func (c *MetadataClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get metadata: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	return body, nil
}

func (c *MetadataClient) parse(body []byte) (*model.TokenMetadata, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("failed to decode metadata: invalid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, errors.New("failed to decode metadata: not an object")
	}

	meta := &model.TokenMetadata{
		Name:        doc.Get("name").String(),
		Description: doc.Get("description").String(),
		Image:       c.ResolveURI(doc.Get("image").String()),
	}
	doc.Get("attributes").ForEach(func(_, attr gjson.Result) bool {
		meta.Attributes = append(meta.Attributes, model.MetadataAttribute{
			TraitType: attr.Get("trait_type").String(),
			Value:     attr.Get("value").String(),
		})
		return true
	})
	return meta, nil
}
