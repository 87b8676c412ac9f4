package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// bank account views are matched exactly on routing number, country and owner
const bankAccountsMapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "user_id":           {"type": "keyword"},
      "country":           {"type": "keyword"},
      "currency":          {"type": "keyword"},
      "routing_number":    {"type": "keyword"},
      "account_number":    {"type": "keyword", "index": false},
      "bank_account_type": {"type": "keyword"},
      "created_at":        {"type": "date"}
    }
  }
}`

// EnsureBankAccountsIndex creates the index with its mapping if it does not exist yet.
func EnsureBankAccountsIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = esapi.IndicesCreateRequest{Index: index, Body: strings.NewReader(bankAccountsMapping)}.Do(ctx, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
