// Package api is the typed client for the course-navigator backend. All
// requests go through the session transport, which stamps the tab identity
// header on every call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/internal/session"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

const buildingDirectoryPath = "/data/building_map_with_coords.json"

// Client talks to the backend described in the external interface table.
type Client struct {
	baseURL    string
	httpClient *http.Client
	identity   *session.Identity
	logger     *zap.Logger
}

// New constructs a Client. httpClient should be the session-scoped client so
// the identity header travels with every request.
func New(baseURL string, httpClient *http.Client, identity *session.Identity, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		identity:   identity,
		logger:     logger,
	}
}

// SubmitEntries posts a manual entry batch and returns the parsed schedule.
func (c *Client) SubmitEntries(ctx context.Context, req dto.SubmitEntriesRequest) (models.Schedule, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode entries")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse_text", bytes.NewReader(payload))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.doSchedule(httpReq)
}

// ParseScheduleFile uploads a schedule document and returns the parsed
// schedule.
func (c *Client) ParseScheduleFile(ctx context.Context, filename string, file io.Reader) (models.Schedule, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upload")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read document")
	}
	if err := writer.Close(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse_schedule", body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doSchedule(httpReq)
}

// LoadBuildingDirectory fetches the building directory file.
func (c *Client) LoadBuildingDirectory(ctx context.Context) (dto.BuildingMap, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+buildingDirectoryPath, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrResourceUnavailable.Code, appErrors.ErrResourceUnavailable.Status, "building directory unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.New(appErrors.ErrResourceUnavailable.Code, appErrors.ErrResourceUnavailable.Status, "building directory unavailable")
	}

	var directory dto.BuildingMap
	if err := json.NewDecoder(resp.Body).Decode(&directory); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrResourceUnavailable.Code, appErrors.ErrResourceUnavailable.Status, "building directory malformed")
	}
	return directory, nil
}

// Cleanup asks the backend to drop all data held for this tab.
func (c *Client) Cleanup(ctx context.Context) error {
	id, err := c.identity.GetOrCreate()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve tab identity")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/cleanup/%s", c.baseURL, id), nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "cleanup request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.rejectionFrom(resp)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// ProbeFloorplan performs the lightweight existence check before a floorplan
// document is embedded. A failed probe is a degradation, not a dialog.
func (c *Client) ProbeFloorplan(ctx context.Context, filename string) error {
	url, err := c.FloorplanURL(filename)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrResourceUnavailable.Code, appErrors.ErrResourceUnavailable.Status, "floorplan unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return appErrors.New(appErrors.ErrResourceUnavailable.Code, appErrors.ErrResourceUnavailable.Status, "floorplan unavailable")
	}
	return nil
}

// FloorplanURL returns the tab-scoped URL of a staged floorplan document.
func (c *Client) FloorplanURL(filename string) (string, error) {
	id, err := c.identity.GetOrCreate()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve tab identity")
	}
	return fmt.Sprintf("%s/%s/floorplans/%s", c.baseURL, id, filename), nil
}

// SchedulePDFURL returns the tab-scoped URL of the schedule document.
func (c *Client) SchedulePDFURL() (string, error) {
	id, err := c.identity.GetOrCreate()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve tab identity")
	}
	return fmt.Sprintf("%s/%s/schedule.pdf", c.baseURL, id), nil
}

// doSchedule executes a request whose success body is the schedule wire shape.
func (c *Client) doSchedule(req *http.Request) (models.Schedule, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "request could not complete")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.rejectionFrom(resp)
	}

	var sched models.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&sched); err != nil {
		c.logger.Warn("schedule response malformed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedResponse.Code, appErrors.ErrMalformedResponse.Status, "unexpected response shape")
	}
	return sched, nil
}

// rejectionFrom converts a non-success response into a ServerRejection
// carrying the backend's message verbatim when one is present.
func (c *Client) rejectionFrom(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return appErrors.New(appErrors.ErrServerRejection.Code, resp.StatusCode, fmt.Sprintf("server rejected the request (%s)", resp.Status))
	}
	return appErrors.New(appErrors.ErrServerRejection.Code, resp.StatusCode, payload.Error)
}
