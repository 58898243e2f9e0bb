package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
)

var errBoom = errors.New("connection refused")

type memResponses struct {
	mu      sync.Mutex
	records []models.SurveyResponse
	scans   int
	fail    error
}

func (m *memResponses) Insert(_ context.Context, r *models.SurveyResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return storeErr("insert respuesta", m.fail)
	}
	r.ID = primitive.NewObjectID()
	m.records = append(m.records, *r)
	return nil
}

func (m *memResponses) FindAll(_ context.Context) ([]models.SurveyResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, storeErr("find respuestas", m.fail)
	}
	return append([]models.SurveyResponse{}, m.records...), nil
}

func (m *memResponses) Each(_ context.Context, fn func(models.SurveyResponse) error) error {
	m.mu.Lock()
	records := append([]models.SurveyResponse{}, m.records...)
	m.scans++
	fail := m.fail
	m.mu.Unlock()
	if fail != nil {
		return storeErr("find respuestas", fail)
	}
	for _, r := range records {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *memResponses) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, storeErr("delete respuestas", m.fail)
	}
	n := int64(len(m.records))
	m.records = nil
	return n, nil
}

type memAdmins struct {
	mu     sync.Mutex
	admins []models.Admin
}

func (m *memAdmins) Create(_ context.Context, a *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.admins {
		if x.Usuario == a.Usuario || x.Email == a.Email {
			return ErrDuplicateAdmin
		}
	}
	a.ID = primitive.NewObjectID()
	m.admins = append(m.admins, *a)
	return nil
}

func (m *memAdmins) FindByUsuario(_ context.Context, usuario string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.admins {
		if x.Usuario == usuario {
			a := x
			return &a, nil
		}
	}
	return nil, ErrAdminNotFound
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}
