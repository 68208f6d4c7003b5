// Copyright 2026 Anders Sklund
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package deltasharing loads Delta Sharing tables into rowtable
// sources. A shared table's data files arrive as Arrow tables and are
// materialized through the arrow adapter.
package deltasharing

import (
	"context"
	"fmt"
	"time"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	arrowadapter "github.com/asklund/fyne-rowtable/adapters/arrow"
)

// Config controls the client.
type Config struct {
	// Timeout bounds each API call. Zero means 60 seconds.
	Timeout time.Duration
}

// DefaultConfig returns the config used against typical servers.
func DefaultConfig() Config {
	return Config{Timeout: 60 * time.Second}
}

// Client wraps a Delta Sharing connection established from a profile.
type Client struct {
	ds  delta_sharing.SharingClientV2
	cfg Config
}

// NewClientFromProfile connects using the JSON content of a sharing
// profile file.
func NewClientFromProfile(profile string, cfg Config) (*Client, error) {
	ds, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}
	return &Client{ds: ds, cfg: cfg}, nil
}

// Shares lists the shares visible to the profile.
func (c *Client) Shares(ctx context.Context) ([]delta_sharing.Share, error) {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()

	shares, _, err := c.ds.ListShares(ctx, 0, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

// Tables lists every table across all shares and schemas in one pass.
func (c *Client) Tables(ctx context.Context) ([]delta_sharing.Table, error) {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()

	tables, _, err := c.ds.ListAllTables_V2(ctx, 0, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// FileIDs lists the data file ids that make up a shared table.
func (c *Client) FileIDs(ctx context.Context, table delta_sharing.Table) ([]string, error) {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()

	resp, err := c.ds.ListFilesInTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list files in table %s: %w", table.Name, err)
	}
	ids := make([]string, 0, len(resp.AddFiles))
	for _, f := range resp.AddFiles {
		ids = append(ids, f.Id)
	}
	return ids, nil
}

// Open loads one data file of a shared table into a source. The Arrow
// table is released once its contents are copied.
func (c *Client) Open(ctx context.Context, table delta_sharing.Table, fileID string) (*arrowadapter.Source, error) {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()

	tbl, err := delta_sharing.LoadArrowTable(ctx, c.ds, table, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", table.Name, err)
	}
	defer tbl.Release()

	src, err := arrowadapter.NewFromArrowTable(tbl)
	if err != nil {
		return nil, err
	}
	meta := src.Metadata()
	meta["share"] = table.Share
	meta["schema"] = table.Schema
	meta["table"] = table.Name
	return src, nil
}

func (c *Client) timeoutContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
