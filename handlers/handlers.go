// Package handlers implements the JSON endpoints consumed by the dashboard frontend.
//
//   - /api/crypto-data         rows of the published CSV export
//   - /api/crypto-data-switch  rows of the first worksheet and the alerts log, via the Sheets API
//   - /app/crypto-data         typed coins and alerts from the live_data and alerts_log worksheets
//
// Service account credentials are resolved again for every request.
package handlers

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/api/sheets/v4"

	"github.com/cryptowatch/crypto-sheets/config"
	"github.com/cryptowatch/crypto-sheets/credentials"
	"github.com/cryptowatch/crypto-sheets/google"
	"github.com/cryptowatch/crypto-sheets/log"
	"github.com/cryptowatch/crypto-sheets/table"
)

type Handlers struct {
	config   *config.Config
	resolver credentials.Resolver
	env      credentials.Environment
	fsys     fs.FS
	client   *http.Client
	now      func() time.Time
}

type Option func(*Handlers)

// WithEnvironment replaces the process environment as the source of credentials.
func WithEnvironment(env credentials.Environment) Option {
	return func(h *Handlers) {
		h.env = env
	}
}

// WithFS sets the directory searched for service-account-key.json. nil disables the key file.
func WithFS(fsys fs.FS) Option {
	return func(h *Handlers) {
		h.fsys = fsys
	}
}

// WithHTTPClient sets the client used for the token endpoint, the Sheets API and CSV exports.
func WithHTTPClient(client *http.Client) Option {
	return func(h *Handlers) {
		h.client = client
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		h.now = now
	}
}

func WithResolver(resolver credentials.Resolver) Option {
	return func(h *Handlers) {
		h.resolver = resolver
	}
}

func New(cfg *config.Config, opts ...Option) *Handlers {
	h := Handlers{
		config:   cfg,
		resolver: credentials.DefaultResolver,
		env:      credentials.OSEnvironment{},
		client:   &http.Client{Timeout: cfg.Timeout},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return &h
}

func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter()

	r.Use(requestID, accessLog)

	r.HandleFunc("/api/crypto-data", h.PublishedSheet)
	r.HandleFunc("/api/crypto-data-switch", h.Spreadsheet)
	r.HandleFunc("/app/crypto-data", h.LiveData)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		reply(w, http.StatusNotFound, message{Error: "Not found"})
	})

	return r
}

// PublishedSheet serves the rows of the public CSV export.
func (h *Handlers) PublishedSheet(w http.ResponseWriter, rq *http.Request) {
	if preflight(w, rq, http.MethodGet) {
		return
	}

	url := h.config.PublicSheetURL
	if url == "" {
		reply(w, http.StatusInternalServerError, message{
			Error:   "Missing PUBLIC_SHEET_URL",
			Message: "Set PUBLIC_SHEET_URL in .env.local (for local dev) and in the hosting environment (for production)",
		})
		return
	}

	ctx, cancel := context.WithTimeout(rq.Context(), h.config.Timeout)
	defer cancel()

	t, err := google.FetchCSV(ctx, h.client, url)
	if err != nil {
		logger(rq).Errorf("error fetching published sheet (%v)", err)
		reply(w, http.StatusInternalServerError, failure{
			Error:     "Failed to fetch published sheet",
			Message:   err.Error(),
			Timestamp: h.timestamp(),
		})
		return
	}

	coins := t.Objects()

	reply(w, http.StatusOK, published{
		Success:   true,
		Count:     len(coins),
		Coins:     coins,
		Timestamp: h.timestamp(),
	})
}

// Spreadsheet serves the first worksheet and the tail of the alerts log as generic row objects.
func (h *Handlers) Spreadsheet(w http.ResponseWriter, rq *http.Request) {
	if preflight(w, rq, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(rq.Context(), h.config.Timeout)
	defer cancel()

	service, ok := h.authenticate(ctx, w, rq)
	if !ok {
		return
	}

	spreadsheet, err := h.spreadsheet(ctx, w, service)
	if err != nil {
		h.fail(w, rq, err)
		return
	} else if spreadsheet == nil {
		return
	}

	sheet := google.FirstSheet(spreadsheet)
	if sheet == nil {
		reply(w, http.StatusNotFound, message{Error: "No sheets found in spreadsheet"})
		return
	}

	coins, err := h.rows(ctx, service, sheet.Properties.Title)
	if err != nil {
		h.fail(w, rq, err)
		return
	}

	alerts := []map[string]string{}
	if sheet := google.FindSheet(spreadsheet, h.config.AlertSheets...); sheet == nil {
		logger(rq).Infof("no alerts sheet found")
	} else if t, err := h.rows(ctx, service, sheet.Properties.Title); err != nil {
		logger(rq).Warnf("error reading alerts sheet '%v' (%v)", sheet.Properties.Title, err)
	} else {
		alerts = t.Last(h.config.AlertLimit).Objects()
	}

	objects := coins.Objects()

	reply(w, http.StatusOK, rows{
		Success:    true,
		Timestamp:  h.timestamp(),
		SheetTitle: google.Title(spreadsheet),
		Coins:      objects,
		Alerts:     alerts,
		Count:      len(objects),
	})
}

// LiveData serves the live data and alerts worksheets in the frontend's coin and alert format.
func (h *Handlers) LiveData(w http.ResponseWriter, rq *http.Request) {
	if preflight(w, rq, http.MethodGet, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(rq.Context(), h.config.Timeout)
	defer cancel()

	service, ok := h.authenticate(ctx, w, rq)
	if !ok {
		return
	}

	spreadsheet, err := h.spreadsheet(ctx, w, service)
	if err != nil {
		h.fail(w, rq, err)
		return
	} else if spreadsheet == nil {
		return
	}

	sheet := google.FindSheet(spreadsheet, h.config.LiveDataSheet)
	if sheet == nil {
		reply(w, http.StatusNotFound, message{Error: "No '" + h.config.LiveDataSheet + "' sheet found in spreadsheet"})
		return
	}

	t, err := h.rows(ctx, service, sheet.Properties.Title)
	if err != nil {
		h.fail(w, rq, err)
		return
	}

	coins, err := table.Coins(t)
	if err != nil {
		h.fail(w, rq, err)
		return
	}

	alerts := []table.Alert{}
	if sheet := google.FindSheet(spreadsheet, h.config.AlertSheets...); sheet == nil {
		logger(rq).Infof("no alerts sheet found")
	} else if t, err := h.rows(ctx, service, sheet.Properties.Title); err != nil {
		logger(rq).Warnf("error reading alerts sheet '%v' (%v)", sheet.Properties.Title, err)
	} else if alerts, err = table.Alerts(t, h.config.AlertLimit); err != nil {
		h.fail(w, rq, err)
		return
	}

	reply(w, http.StatusOK, live{
		Success:     true,
		Coins:       coins,
		Alerts:      alerts,
		LastUpdated: h.timestamp(),
		Count:       len(coins),
	})
}

// authenticate resolves the service account and exchanges it for a token. The reply has been
// written when it returns false.
func (h *Handlers) authenticate(ctx context.Context, w http.ResponseWriter, rq *http.Request) (*sheets.Service, bool) {
	sa, err := h.resolver.Resolve(h.env, h.fsys)
	if err != nil {
		var e *credentials.Error
		if errors.As(err, &e) && e.Kind == credentials.MissingCredentials {
			logger(rq).Warnf("%v", err)
			reply(w, http.StatusInternalServerError, missing{
				Error:    "Missing service account credentials",
				Message:  e.Hint,
				Kind:     string(e.Kind),
				Required: e.Required,
			})
		} else if errors.As(err, &e) {
			logger(rq).Errorf("%v", err)
			reply(w, http.StatusInternalServerError, failure{
				Error:     "Failed to fetch crypto data",
				Kind:      string(e.Kind),
				Message:   e.Message,
				Hint:      e.Hint,
				Timestamp: h.timestamp(),
			})
		} else {
			h.fail(w, rq, err)
		}

		return nil, false
	}

	ctx = google.Context(ctx, h.client)
	ts := google.TokenSource(ctx, sa, h.config.TokenURL, google.SHEETS)

	logger(rq).Debugf("authenticating as %v", sa.Redacted())

	if err := google.Authorise(ts); err != nil {
		logger(rq).Errorf("%v", err)
		reply(w, http.StatusUnauthorized, failure{
			Error:     "Authentication failed",
			Message:   google.Explain(err),
			Timestamp: h.timestamp(),
		})

		return nil, false
	}

	service, err := google.NewSheets(ctx, google.Client(ctx, ts), h.config.SheetsEndpoint)
	if err != nil {
		h.fail(w, rq, err)
		return nil, false
	}

	return service, true
}

// spreadsheet returns nil without an error when it has already replied.
func (h *Handlers) spreadsheet(ctx context.Context, w http.ResponseWriter, service *sheets.Service) (*sheets.Spreadsheet, error) {
	id := h.config.SheetID
	if id == "" {
		reply(w, http.StatusInternalServerError, message{Error: "GOOGLE_SHEET_ID environment variable is required"})
		return nil, nil
	}

	id, err := google.SpreadsheetID(id)
	if err != nil {
		return nil, err
	}

	return google.GetSpreadsheet(ctx, service, id)
}

func (h *Handlers) rows(ctx context.Context, service *sheets.Service, title string) (*table.Table, error) {
	id, err := google.SpreadsheetID(h.config.SheetID)
	if err != nil {
		return nil, err
	}

	values, err := google.GetRows(ctx, service, id, title)
	if err != nil {
		return nil, err
	}

	return table.MakeTable(values)
}

func (h *Handlers) fail(w http.ResponseWriter, rq *http.Request, err error) {
	logger(rq).Errorf("error fetching crypto data (%v)", err)

	reply(w, http.StatusInternalServerError, failure{
		Error:     "Failed to fetch crypto data",
		Message:   google.Explain(err),
		Timestamp: h.timestamp(),
	})
}

func (h *Handlers) timestamp() string {
	return h.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func logger(rq *http.Request) *log.Entry {
	return log.With(log.Fields{
		"request_id": RequestID(rq.Context()),
		"path":       rq.URL.Path,
	})
}
