// Package airtable is the HTTP client for the external tabular-store
// collaborator. It speaks the store's record API (list/get/create/
// update/delete over JSON) and converts transport and store failures
// into the apperr taxonomy. Domain column mapping lives in the repo
// layer, not here.
package airtable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

// Record is one row of a store table. Fields is the raw column map;
// use the typed accessors when reading it.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// Client talks to one store base.
type Client struct {
	BaseURL    string
	APIKey     string
	BaseID     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		BaseURL: cfg.Airtable.BaseURL,
		APIKey:  cfg.Airtable.ApiKey,
		BaseID:  cfg.Airtable.BaseID,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.Airtable.TimeoutSec) * time.Second,
		},
		Logger: log,
	}
}

// ListOptions narrows a List call store-side. Zero value lists the
// whole table in store order.
type ListOptions struct {
	FilterByFormula string
	SortField       string
	SortDesc        bool
	MaxRecords      int
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// List fetches all records of a table, following the store's offset
// pagination until exhausted.
func (c *Client) List(ctx context.Context, table string, opt ListOptions) ([]Record, error) {
	var out []Record
	offset := ""

	for {
		params := url.Values{}
		if opt.FilterByFormula != "" {
			params.Set("filterByFormula", opt.FilterByFormula)
		}
		if opt.SortField != "" {
			params.Set("sort[0][field]", opt.SortField)
			dir := "asc"
			if opt.SortDesc {
				dir = "desc"
			}
			params.Set("sort[0][direction]", dir)
		}
		if opt.MaxRecords > 0 {
			params.Set("maxRecords", strconv.Itoa(opt.MaxRecords))
		}
		if offset != "" {
			params.Set("offset", offset)
		}

		endpoint := c.tableURL(table)
		if enc := params.Encode(); enc != "" {
			endpoint += "?" + enc
		}

		body, err := c.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		var page listResponse
		if err := sonic.Unmarshal(body, &page); err != nil {
			return nil, apperr.Wrap(apperr.KindMalformedResponse, "decode list response", err)
		}
		out = append(out, page.Records...)

		if page.Offset == "" {
			return out, nil
		}
		offset = page.Offset
	}
}

// Get fetches a single record by store id.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	body, err := c.do(ctx, http.MethodGet, c.recordURL(table, id), nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// Create inserts a record and returns it with its store-assigned id.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	payload, err := sonic.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreRejected, "encode record", err)
	}
	body, err := c.do(ctx, http.MethodPost, c.tableURL(table), payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// Update patches the given columns of an existing record; columns not
// named keep their stored value.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	payload, err := sonic.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreRejected, "encode record", err)
	}
	body, err := c.do(ctx, http.MethodPatch, c.recordURL(table, id), payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// Delete removes a record permanently.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.recordURL(table, id), nil)
	return err
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, c.BaseID, url.PathEscape(table))
}

func (c *Client) recordURL(table, id string) string {
	return fmt.Sprintf("%s/%s", c.tableURL(table), url.PathEscape(id))
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNetworkFailure, "create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return nil, apperr.Wrap(apperr.KindTimeout, "store request timed out", err)
		}
		return nil, apperr.Wrap(apperr.KindNetworkFailure, "store unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNetworkFailure, "read store response", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	c.Logger.Sugar().Errorw("store request failed",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
	)
	return nil, statusError(resp.StatusCode, body)
}

func statusError(status int, body []byte) error {
	detail := storeErrorDetail(body)
	switch {
	case status == http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, "record not found")
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		return apperr.New(apperr.KindStoreRejected, "store rejected request: "+detail)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.New(apperr.KindStoreRejected, "store refused credentials")
	default:
		return apperr.New(apperr.KindStoreUnavailable, fmt.Sprintf("store answered %d", status))
	}
}

func storeErrorDetail(body []byte) string {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := sonic.Unmarshal(body, &payload); err != nil || payload.Error.Message == "" {
		return "unknown error"
	}
	return payload.Error.Message
}

func decodeRecord(body []byte) (*Record, error) {
	rec := new(Record)
	if err := sonic.Unmarshal(body, rec); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "decode record", err)
	}
	return rec, nil
}
