// Package memory provides a map-backed Repository used by tests and
// local development. The execution model mirrors the serialized
// transaction log the service assumes: a single mutex orders every
// operation, and invariants are enforced by explicit state checks in
// the services, not by storage-level locking.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
)

type Repository struct {
	mu sync.Mutex

	questionSets map[string]*models.QuestionSet
	nextSeq      uint64

	assessments map[string]*models.Assessment
	nextID      uint

	callers        map[string]*models.AuthorizedCaller
	oracleRequests map[string]*models.OracleRequest

	oracleConfig *models.OracleConfig
	rewardConfig *models.RewardConfig

	accounts map[string]*models.LedgerAccount
	audits   []*models.AuditLog
}

func NewRepository() *Repository {
	return &Repository{
		questionSets:   make(map[string]*models.QuestionSet),
		assessments:    make(map[string]*models.Assessment),
		callers:        make(map[string]*models.AuthorizedCaller),
		oracleRequests: make(map[string]*models.OracleRequest),
		accounts:       make(map[string]*models.LedgerAccount),
	}
}

func (r *Repository) QuestionSet() repositories.QuestionSetRepository     { return (*questionSetRepo)(r) }
func (r *Repository) Assessment() repositories.AssessmentRepository       { return (*assessmentRepo)(r) }
func (r *Repository) Caller() repositories.CallerRepository               { return (*callerRepo)(r) }
func (r *Repository) OracleRequest() repositories.OracleRequestRepository { return (*oracleRequestRepo)(r) }
func (r *Repository) Config() repositories.ConfigRepository               { return (*configRepo)(r) }
func (r *Repository) Ledger() repositories.LedgerRepository               { return (*ledgerRepo)(r) }
func (r *Repository) Audit() repositories.AuditRepository                 { return (*auditRepo)(r) }

// Transaction applies fn directly. Mutations are immediate; rollback
// is not simulated, which matches the all-or-nothing call pattern the
// services use (state checks run before any write).
func (r *Repository) Transaction(_ context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

// ===== QUESTION SETS =====

type questionSetRepo Repository

func (q *questionSetRepo) Create(_ context.Context, set *models.QuestionSet) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextSeq++
	set.Seq = q.nextSeq
	set.CreatedAt = time.Now()
	set.UpdatedAt = set.CreatedAt
	cp := *set
	q.questionSets[set.ID] = &cp
	return nil
}

func (q *questionSetRepo) GetByID(_ context.Context, id string) (*models.QuestionSet, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	set, ok := q.questionSets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *set
	return &cp, nil
}

func (q *questionSetRepo) Update(_ context.Context, set *models.QuestionSet) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.questionSets[set.ID]; !ok {
		return repositories.ErrNotFound
	}
	set.UpdatedAt = time.Now()
	cp := *set
	q.questionSets[set.ID] = &cp
	return nil
}

func (q *questionSetRepo) List(_ context.Context) ([]*models.QuestionSet, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	sets := make([]*models.QuestionSet, 0, len(q.questionSets))
	for _, set := range q.questionSets {
		cp := *set
		sets = append(sets, &cp)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Seq < sets[j].Seq })
	return sets, nil
}

func (q *questionSetRepo) ListActive(ctx context.Context) ([]*models.QuestionSet, error) {
	all, err := q.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*models.QuestionSet, 0, len(all))
	for _, set := range all {
		if set.Active {
			active = append(active, set)
		}
	}
	return active, nil
}

// ===== ASSESSMENTS =====

type assessmentRepo Repository

func (a *assessmentRepo) Create(_ context.Context, assessment *models.Assessment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	assessment.ID = a.nextID
	assessment.CreatedAt = time.Now()
	assessment.UpdatedAt = assessment.CreatedAt
	cp := *assessment
	a.assessments[assessment.UserID] = &cp
	return nil
}

func (a *assessmentRepo) GetByUser(_ context.Context, userID string) (*models.Assessment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	assessment, ok := a.assessments[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *assessment
	return &cp, nil
}

func (a *assessmentRepo) Update(_ context.Context, assessment *models.Assessment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.assessments[assessment.UserID]; !ok {
		return repositories.ErrNotFound
	}
	assessment.UpdatedAt = time.Now()
	cp := *assessment
	a.assessments[assessment.UserID] = &cp
	return nil
}

func (a *assessmentRepo) ListByStatus(_ context.Context, status models.AssessmentStatus) ([]*models.Assessment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []*models.Assessment
	for _, assessment := range a.assessments {
		if assessment.Status == status {
			cp := *assessment
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

// ===== AUTHORIZED CALLERS =====

type callerRepo Repository

func (c *callerRepo) Add(_ context.Context, caller *models.AuthorizedCaller) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.callers[caller.Identity]; ok {
		return nil
	}
	caller.AddedAt = time.Now()
	cp := *caller
	c.callers[caller.Identity] = &cp
	return nil
}

func (c *callerRepo) Remove(_ context.Context, identity string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.callers, identity)
	return nil
}

func (c *callerRepo) Exists(_ context.Context, identity string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.callers[identity]
	return ok, nil
}

func (c *callerRepo) List(_ context.Context) ([]*models.AuthorizedCaller, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	callers := make([]*models.AuthorizedCaller, 0, len(c.callers))
	for _, caller := range c.callers {
		cp := *caller
		callers = append(callers, &cp)
	}
	sort.Slice(callers, func(i, j int) bool { return callers[i].AddedAt.Before(callers[j].AddedAt) })
	return callers, nil
}

// ===== ORACLE REQUESTS =====

type oracleRequestRepo Repository

func (o *oracleRequestRepo) Create(_ context.Context, request *models.OracleRequest) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	cp := *request
	o.oracleRequests[request.RequestID] = &cp
	return nil
}

func (o *oracleRequestRepo) GetByID(_ context.Context, requestID string) (*models.OracleRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	request, ok := o.oracleRequests[requestID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *request
	return &cp, nil
}

func (o *oracleRequestRepo) GetByUser(_ context.Context, userID string) (*models.OracleRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, request := range o.oracleRequests {
		if request.UserID == userID {
			cp := *request
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (o *oracleRequestRepo) Delete(_ context.Context, requestID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.oracleRequests[requestID]; !ok {
		return repositories.ErrNotFound
	}
	delete(o.oracleRequests, requestID)
	return nil
}

func (o *oracleRequestRepo) DeleteByUser(_ context.Context, userID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for id, request := range o.oracleRequests {
		if request.UserID == userID {
			delete(o.oracleRequests, id)
		}
	}
	return nil
}

// ===== CONFIG =====

type configRepo Repository

func (c *configRepo) GetOracleConfig(_ context.Context) (*models.OracleConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.oracleConfig == nil {
		return &models.OracleConfig{ID: 1}, nil
	}
	cp := *c.oracleConfig
	return &cp, nil
}

func (c *configRepo) SaveOracleConfig(_ context.Context, cfg *models.OracleConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg.ID = 1
	cfg.UpdatedAt = time.Now()
	cp := *cfg
	c.oracleConfig = &cp
	return nil
}

func (c *configRepo) GetRewardConfig(_ context.Context) (*models.RewardConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rewardConfig == nil {
		return &models.RewardConfig{ID: 1, MaxRewardUnits: models.DefaultMaxRewardUnits}, nil
	}
	cp := *c.rewardConfig
	return &cp, nil
}

func (c *configRepo) SaveRewardConfig(_ context.Context, cfg *models.RewardConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg.ID = 1
	cfg.UpdatedAt = time.Now()
	cp := *cfg
	c.rewardConfig = &cp
	return nil
}

// ===== LEDGER =====

type ledgerRepo Repository

func (l *ledgerRepo) GetAccount(_ context.Context, userID string) (*models.LedgerAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[userID]
	if !ok {
		return &models.LedgerAccount{UserID: userID, Balance: "0"}, nil
	}
	cp := *account
	return &cp, nil
}

func (l *ledgerRepo) Save(_ context.Context, account *models.LedgerAccount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	account.UpdatedAt = time.Now()
	cp := *account
	l.accounts[account.UserID] = &cp
	return nil
}

// ===== AUDIT =====

type auditRepo Repository

func (a *auditRepo) Create(_ context.Context, log *models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	log.ID = uint(len(a.audits) + 1)
	log.CreatedAt = time.Now()
	cp := *log
	a.audits = append(a.audits, &cp)
	return nil
}

func (a *auditRepo) List(_ context.Context, limit, offset int) ([]*models.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if offset >= len(a.audits) {
		return nil, nil
	}
	logs := a.audits[offset:]
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}
	out := make([]*models.AuditLog, len(logs))
	for i, log := range logs {
		cp := *log
		out[i] = &cp
	}
	return out, nil
}
