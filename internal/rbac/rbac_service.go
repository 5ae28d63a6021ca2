package rbac

import (
	"context"
	"strings"
	"sync"

	"contractor-erp/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Reload(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) []domain.PermissionResponse
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	grants   map[string][]domain.PermissionResponse
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		grants:   map[string][]domain.PermissionResponse{},
		logger:   l,
	}
}

// Reload replaces the in-memory policy with the role_permissions table.
func (s *service) Reload(ctx context.Context) error {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	grants := make(map[string][]domain.PermissionResponse)
	for _, row := range rows {
		if _, err := s.enforcer.AddPolicy(row.Role, row.Resource, row.Action); err != nil {
			return err
		}
		grants[row.Role] = append(grants[row.Role], domain.PermissionResponse{
			Resource: row.Resource,
			Action:   row.Action,
		})
	}
	s.grants = grants

	s.logger.Info("rbac policy loaded", zap.Int("rules", len(rows)), zap.Int("roles", len(grants)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		return false, nil
	}

	s.mu.RLock()
	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("role", role),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("user_id", req.UserID),
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) []domain.PermissionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PermissionResponse, len(s.grants[role]))
	copy(out, s.grants[role])
	return out
}
