package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// AccountIndex keeps a searchable copy of account profiles in Elasticsearch.
type AccountIndex struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

func NewAccountIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *AccountIndex {
	return &AccountIndex{ES: es, IndexName: index, Logger: logger}
}

func documentFor(a *entity.Account) repository.AccountDocument {
	return repository.AccountDocument{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		City:      a.City,
		Country:   a.Country,
		CreatedAt: a.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (x *AccountIndex) Index(ctx context.Context, a *entity.Account) error {
	b, err := json.Marshal(documentFor(a))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index account %s: %s", a.ID, res.Status())
	}
	return nil
}

// Remove deletes the account document. A document that was never indexed is not an error.
func (x *AccountIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove account %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match query over the identity and name fields.
func (x *AccountIndex) Search(ctx context.Context, q string, size int) ([]repository.AccountDocument, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "username^2", "first_name", "last_name", "city", "country"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return []repository.AccountDocument{}, nil
		}
		return nil, fmt.Errorf("search accounts: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source repository.AccountDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]repository.AccountDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	if x.Logger != nil {
		x.Logger.WithFields(logrus.Fields{"q": q, "hits": len(out)}).Debug("account search")
	}
	return out, nil
}

var _ repository.AccountSearch = (*AccountIndex)(nil)
