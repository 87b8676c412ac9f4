package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bank-accounts/internal/domain/bankaccount"
	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	"github.com/oksasatya/go-bank-accounts/internal/domain/event"
	repo "github.com/oksasatya/go-bank-accounts/internal/domain/repository"
	"github.com/oksasatya/go-bank-accounts/internal/metrics"
	"github.com/oksasatya/go-bank-accounts/pkg/helpers"
)

var (
	ErrBankAccountNotFound = errors.New("bank account not found")
	ErrUnsupportedCountry  = bankaccount.ErrUnsupportedCountry
	ErrExportNotConfigured = errors.New("export storage not configured")
)

// ValidationError carries the record-level errors of a rejected bank account.
type ValidationError struct {
	Country string
	Errors  []entity.RecordError
	Full    map[string][]string
}

func newValidationError(country string, errs *entity.Errors) *ValidationError {
	return &ValidationError{Country: country, Errors: errs.Items(), Full: errs.Full()}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, it := range e.Errors {
		msgs = append(msgs, it.Message)
	}
	return "bank account invalid: " + strings.Join(msgs, " ")
}

// EventPublisher publishes bank account events; *helpers.RabbitPublisher satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID string
	Email  string
	Name   string
}

type CreateInput struct {
	Country       string
	BankCode      string
	AccountNumber string
}

// View is the read-only representation of a bank account exposed outside the service.
type View struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	bankaccount.Hash
	CreatedAt time.Time `json:"created_at"`
}

func NewView(v bankaccount.Variant) View {
	rec := v.Record()
	return View{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Country:   v.Country(),
		Currency:  v.Currency().String(),
		Hash:      v.ToHash(),
		CreatedAt: rec.CreatedAt,
	}
}

type Service struct {
	Repo            repo.BankAccountRepository
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESIndex         string
	GCS             *storage.Client
	GCSBucket       string
	GCSExportPrefix string
	Events          EventPublisher
	Metrics         *metrics.Metrics
	CacheTTL        time.Duration
}

func NewService(repo repo.BankAccountRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, events EventPublisher, logger *logrus.Logger) *Service {
	return &Service{
		Repo:            repo,
		Redis:           rdb,
		Logger:          logger,
		ES:              es,
		ESIndex:         esIndex,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		GCSExportPrefix: "exports/bank-accounts",
		Events:          events,
		CacheTTL:        15 * time.Minute,
	}
}

func (s *Service) build(userID string, in CreateInput) (bankaccount.Variant, error) {
	rec := entity.NewBankAccount(userID, in.Country, in.BankCode, in.AccountNumber)
	return bankaccount.New(rec)
}

// Check builds the variant for the input and validates it without persisting anything.
func (s *Service) Check(ctx context.Context, actor Actor, in CreateInput) (bankaccount.Variant, *entity.Errors, error) {
	v, err := s.build(actor.UserID, in)
	if err != nil {
		return nil, nil, err
	}
	errs := v.Validate()
	kinds := make([]string, 0, errs.Len())
	for _, it := range errs.Items() {
		kinds = append(kinds, string(it.Kind))
	}
	s.Metrics.ObserveValidation(v.Country(), kinds)
	if len(kinds) > 0 && s.Logger != nil {
		s.Logger.WithFields(helpers.AccountFields("", actor.UserID, v.Country())).
			WithField("errors", kinds).Info("bank account rejected")
	}
	return v, errs, nil
}

// Create validates and persists a bank account, then caches, indexes and announces its masked view.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (*View, error) {
	v, errs, err := s.Check(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, newValidationError(v.Country(), errs)
	}

	rec := v.Record()
	if err := s.Repo.Create(ctx, rec); err != nil {
		helpers.LogError(s.Logger, "persist bank account failed", err, helpers.AccountFields("", actor.UserID, v.Country()))
		return nil, fmt.Errorf("create bank account: %w", err)
	}
	s.Metrics.IncrementAdded(v.Country())

	view := NewView(v)
	s.cacheView(ctx, view)
	_ = s.indexView(ctx, view)
	s.publish(ctx, event.NewBankAccountEvent(event.BankAccountCreated, v, actor.Email, actor.Name))

	helpers.LogInfo(s.Logger, "bank account created", helpers.AccountFields(view.ID, actor.UserID, view.Country))
	return &view, nil
}

// Get returns the masked view of one of the user's bank accounts.
func (s *Service) Get(ctx context.Context, userID, id string) (*View, error) {
	if s.Redis != nil {
		var cached View
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, helpers.BankAccountViewKey(id), &cached)
		if err != nil {
			helpers.LogWarn(s.Logger, "bank account cache read failed", err, helpers.AccountFields(id, userID, ""))
		}
		s.Metrics.ObserveCache(ok)
		if ok {
			if cached.UserID != userID {
				return nil, ErrBankAccountNotFound
			}
			return &cached, nil
		}
	}

	v, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	view := NewView(v)
	s.cacheView(ctx, view)
	return &view, nil
}

func (s *Service) load(ctx context.Context, userID, id string) (bankaccount.Variant, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBankAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load bank account: %w", err)
	}
	if rec.UserID != userID {
		return nil, ErrBankAccountNotFound
	}
	return bankaccount.New(rec)
}

// List returns the masked views of all the user's bank accounts, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]View, error) {
	recs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	out := make([]View, 0, len(recs))
	for _, rec := range recs {
		v, err := bankaccount.New(rec)
		if err != nil {
			helpers.LogWarn(s.Logger, "skipping bank account without variant", err, helpers.AccountFields(rec.ID, userID, rec.Country))
			continue
		}
		out = append(out, NewView(v))
	}
	return out, nil
}

// Delete removes the bank account and every derived copy of its view.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	v, err := s.load(ctx, actor.UserID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBankAccountNotFound
		}
		return fmt.Errorf("delete bank account: %w", err)
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, helpers.BankAccountViewKey(id)); err != nil {
			helpers.LogWarn(s.Logger, "bank account cache evict failed", err, helpers.AccountFields(id, actor.UserID, ""))
		}
	}
	s.unindex(ctx, id)
	s.publish(ctx, event.NewBankAccountEvent(event.BankAccountDeleted, v, actor.Email, actor.Name))
	return nil
}

func (s *Service) cacheView(ctx context.Context, view View) {
	if s.Redis == nil || view.ID == "" {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, helpers.BankAccountViewKey(view.ID), view, s.CacheTTL); err != nil {
		helpers.LogWarn(s.Logger, "bank account cache write failed", err, helpers.AccountFields(view.ID, view.UserID, view.Country))
	}
}

func (s *Service) publish(ctx context.Context, ev event.BankAccountEvent) {
	if s.Events == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Events.PublishJSON(c, ev.Type, ev); err != nil {
		fields := helpers.AccountFields(ev.AccountID, ev.UserID, ev.Country)
		fields["event"] = ev.Type
		helpers.LogWarn(s.Logger, "publish bank account event failed", err, fields)
	}
}

func (s *Service) indexView(ctx context.Context, view View) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	b, err := json.Marshal(view)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: view.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		helpers.LogWarn(s.Logger, "es index failed", err, helpers.AccountFields(view.ID, view.UserID, view.Country))
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", view.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) unindex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}.Do(c, s.ES)
	if err != nil {
		helpers.LogWarn(s.Logger, "es delete failed", err, helpers.AccountFields(id, "", ""))
		return
	}
	_ = res.Body.Close()
}

// Search matches the user's bank accounts whose routing number starts with q.
func (s *Service) Search(ctx context.Context, userID, q string, size int) ([]View, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []View{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"user_id": userID}},
				},
				"must": []any{
					map[string]any{"prefix": map[string]any{"routing_number": strings.TrimSpace(q)}},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search bank accounts: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source View `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]View, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// Export uploads the user's masked views as a JSON document and returns its URL.
func (s *Service) Export(ctx context.Context, userID string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrExportNotConfigured
	}
	views, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(map[string]any{
		"user_id":       userID,
		"generated_at":  time.Now().UTC(),
		"bank_accounts": views,
	})
	if err != nil {
		return "", err
	}
	objectPath := path.Join(s.GCSExportPrefix, userID, uuid.NewString()+".json")
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, "application/json", bytes.NewReader(b))
	if err != nil {
		helpers.LogError(s.Logger, "export upload failed", err, helpers.AccountFields("", userID, ""))
		return "", fmt.Errorf("export bank accounts: %w", err)
	}
	return url, nil
}
