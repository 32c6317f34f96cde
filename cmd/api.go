package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/songdash/internal/shared"
	"github.com/desertthunder/songdash/internal/tasks"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") && resp.IsJSON {
		return r.writeJSON(resp.JSONData, false)
	}
	return r.writePlain("%s\n", resp.Pretty())
}

// APIPost makes a direct POST request to the backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}
	if !json.Valid([]byte(data)) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	r.logger.Info("POST request", "path", path)

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("%s\n", resp.Pretty())
}

// APIProbe checks the backend's read endpoints and reports each status.
func (r *Runner) APIProbe(ctx context.Context, cmd *cli.Command) error {
	engine := r.newEngine(nil)

	r.logger.Info("probing backend")
	result, err := engine.Probe(ctx, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type probeJSON struct {
			tasks.EndpointResult
			Error string `json:"error,omitempty"`
		}
		out := make([]probeJSON, len(result.Endpoints))
		for i, ep := range result.Endpoints {
			out[i] = probeJSON{EndpointResult: ep}
			if ep.Error != nil {
				out[i].Error = ep.Error.Error()
			}
		}
		if err := r.writeJSON(out, true); err != nil {
			return err
		}
	} else {
		for _, ep := range result.Endpoints {
			if ep.Error != nil {
				r.writePlain("✗ %s: %v\n", ep.Endpoint, ep.Error)
				continue
			}
			r.writePlain("✓ %s (%d)\n", ep.Endpoint, ep.StatusCode)
		}
	}

	if !result.Healthy() {
		return fmt.Errorf("%w: %d endpoint(s) failed", shared.ErrServiceUnavailable, result.Failed)
	}
	return nil
}
