// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"automation-advisor/internal/common/config"
	apperrors "automation-advisor/internal/common/errors"
)

// ElasticsearchClient reaches the cluster holding the legacy template index.
type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	addresses := cfg.Addresses
	if len(addresses) == 0 && cfg.URL != "" {
		addresses = []string{cfg.URL}
	}

	esCfg := elasticsearch.Config{Addresses: addresses}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, apperrors.NewElasticsearchConnectionFailedError(fmt.Errorf("create client: %w", err))
	}

	return &ElasticsearchClient{Client: es}, nil
}

func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(fmt.Errorf("ping: %w", err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewElasticsearchConnectionFailedError(fmt.Errorf("ping: %s", res.Status()))
	}
	return nil
}
