// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package swapquote computes token swap quotes from a published price
// feed. A feed may carry several rows per currency; only the latest row
// by date counts, and rows without a usable symbol or a positive price
// are dropped.
package swapquote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// PriceRow is one entry of the upstream price feed.
type PriceRow struct {
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
}

// Token is a tradable symbol with its USD price.
type Token struct {
	Symbol string
	Price  float64
}

// Client fetches and evaluates prices from a feed URL.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{url: url, http: httpClient}
}

// FetchTokens downloads the feed and reduces it to one token per
// symbol, sorted by symbol.
func (c *Client) FetchTokens(ctx context.Context) ([]Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching prices: status %d", resp.StatusCode)
	}

	var rows []PriceRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding prices: %w", err)
	}
	return Reduce(rows), nil
}

// Reduce keeps the latest valid row per symbol. Rows with a blank
// currency or non-positive price are skipped; a row with an unparsable
// date only wins over another unparsable one by coming later.
func Reduce(rows []PriceRow) []Token {
	latest := map[string]PriceRow{}
	for _, r := range rows {
		symbol := strings.TrimSpace(r.Currency)
		if symbol == "" || r.Price <= 0 {
			continue
		}
		prev, ok := latest[symbol]
		if !ok {
			latest[symbol] = r
			continue
		}
		prevT, prevErr := time.Parse(time.RFC3339, prev.Date)
		curT, curErr := time.Parse(time.RFC3339, r.Date)
		if curErr == nil && (prevErr != nil || !curT.Before(prevT)) {
			latest[symbol] = r
		} else if curErr != nil && prevErr != nil {
			latest[symbol] = r
		}
	}

	out := make([]Token, 0, len(latest))
	for symbol, r := range latest {
		out = append(out, Token{Symbol: symbol, Price: r.Price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Quote converts amount units of the from token into the to token at
// the current prices.
func Quote(tokens []Token, from, to string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", amount)
	}
	fromPrice, err := price(tokens, from)
	if err != nil {
		return 0, err
	}
	toPrice, err := price(tokens, to)
	if err != nil {
		return 0, err
	}
	return amount * fromPrice / toPrice, nil
}

func price(tokens []Token, symbol string) (float64, error) {
	for _, t := range tokens {
		if t.Symbol == symbol {
			return t.Price, nil
		}
	}
	return 0, fmt.Errorf("unknown token %q", symbol)
}
