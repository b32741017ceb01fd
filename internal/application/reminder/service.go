package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/pkg/id"
	"golang.org/x/sync/errgroup"
)

const (
	ReminderTitle          = "Medication Reminder"
	DefaultReminderMessage = "Your health is calling... Pick up with your meds"

	defaultPageSize = 100
)

// Service runs dispatcher passes.
type Service interface {
	// Run performs one pass over all users for the current minute.
	Run(ctx context.Context) (*domain.RunSummary, error)
	// LastRun returns the summary of the most recent completed pass.
	LastRun() (*domain.RunSummary, bool)
}

type userStore interface {
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type medicationStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Medication, error)
}

type tokenStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.NotificationTarget, error)
}

type preferenceStore interface {
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
}

type dispatchLocker interface {
	Claim(ctx context.Context, lock *domain.DispatchLock) (domain.ClaimOutcome, error)
}

type summaryArchiver interface {
	Archive(ctx context.Context, s *domain.RunSummary) error
}

// ServiceDeps holds the collaborators and tuning knobs of the dispatcher.
// Archive, Logger, Now and NewRunID are optional.
type ServiceDeps struct {
	Users       userStore
	Medications medicationStore
	Tokens      tokenStore
	Preferences preferenceStore
	Locks       dispatchLocker
	Gateway     PushGateway
	Archive     summaryArchiver
	Logger      *slog.Logger

	Now      func() time.Time
	NewRunID func() string

	PageSize        int32
	UserConcurrency int
	ChunkSize       int
	// LockTTL is stamped on each lock as its expiry; zero disables expiry.
	LockTTL time.Duration
}

type service struct {
	users       userStore
	medications medicationStore
	tokens      tokenStore
	preferences preferenceStore
	locks       dispatchLocker
	gateway     PushGateway
	archive     summaryArchiver
	logger      *slog.Logger

	now      func() time.Time
	newRunID func() string

	pageSize    int32
	concurrency int
	chunkSize   int
	lockTTL     time.Duration

	mu   sync.Mutex
	last *domain.RunSummary
}

func NewService(d ServiceDeps) Service {
	s := &service{
		users:       d.Users,
		medications: d.Medications,
		tokens:      d.Tokens,
		preferences: d.Preferences,
		locks:       d.Locks,
		gateway:     d.Gateway,
		archive:     d.Archive,
		logger:      d.Logger,
		now:         d.Now,
		newRunID:    d.NewRunID,
		pageSize:    d.PageSize,
		concurrency: d.UserConcurrency,
		chunkSize:   d.ChunkSize,
		lockTTL:     d.LockTTL,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newRunID == nil {
		s.newRunID = id.New
	}
	if s.pageSize <= 0 {
		s.pageSize = defaultPageSize
	}
	if s.concurrency <= 0 {
		s.concurrency = 1
	}
	if s.chunkSize <= 0 || s.chunkSize > domain.MaxMulticastTokens {
		s.chunkSize = domain.MaxMulticastTokens
	}
	return s
}

type tally struct {
	usersScanned      atomic.Int64
	usersFailed       atomic.Int64
	remindersSent     atomic.Int64
	remindersFailed   atomic.Int64
	dispatchesSkipped atomic.Int64
}

func (s *service) Run(ctx context.Context) (*domain.RunSummary, error) {
	started := s.now()
	nowUTC := started.UTC()
	runID := s.newRunID()
	t := &tally{}

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return nil, err
		}
		users, next, err := s.users.ScanPage(ctx, s.pageSize, cursor)
		if err != nil {
			_ = g.Wait()
			return nil, fmt.Errorf("scan users: %w", err)
		}
		for _, u := range users {
			userID := u.UserID
			g.Go(func() error {
				s.processUser(ctx, nowUTC, userID, t)
				return nil
			})
		}
		if next == "" {
			break
		}
		cursor = next
	}
	_ = g.Wait()

	summary := &domain.RunSummary{
		RunID:             runID,
		UsersScanned:      int(t.usersScanned.Load()),
		UsersFailed:       int(t.usersFailed.Load()),
		RemindersSent:     int(t.remindersSent.Load()),
		RemindersFailed:   int(t.remindersFailed.Load()),
		DispatchesSkipped: int(t.dispatchesSkipped.Load()),
		RanAtUTC:          nowUTC,
		Duration:          s.now().Sub(started),
	}

	s.logger.Info("medication reminder dispatch completed",
		"run_id", summary.RunID,
		"users_scanned", summary.UsersScanned,
		"users_failed", summary.UsersFailed,
		"reminders_sent", summary.RemindersSent,
		"reminders_failed", summary.RemindersFailed,
		"dispatches_skipped", summary.DispatchesSkipped,
		"ran_at_utc", summary.RanAtUTC.Format(time.RFC3339Nano),
	)

	if s.archive != nil {
		if err := s.archive.Archive(ctx, summary); err != nil {
			s.logger.Warn("run summary archive failed", "run_id", summary.RunID, "err", err)
		}
	}

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	return summary, nil
}

func (s *service) LastRun() (*domain.RunSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, false
	}
	cp := *s.last
	return &cp, true
}

// userRecords is everything the dispatcher reads for one user.
type userRecords struct {
	medications []domain.Medication
	targets     []domain.NotificationTarget
	preferences *domain.Preferences
}

func (s *service) processUser(ctx context.Context, nowUTC time.Time, userID string, t *tally) {
	t.usersScanned.Add(1)

	rec, err := s.loadUser(ctx, userID)
	if err != nil {
		t.usersFailed.Add(1)
		s.logger.Warn("load user records failed", "user_id", userID, "err", err)
		return
	}
	if len(rec.medications) == 0 || len(rec.targets) == 0 {
		return
	}

	interval := NormalizeReminderInterval(rec.preferences.ReminderInterval.String)
	lead := ReminderOffsetMinutes(interval)
	body := rec.preferences.CustomReminderMessage.Trimmed()
	if body == "" {
		body = DefaultReminderMessage
	}

	groups := GroupTokensByOffset(rec.targets)
	if len(groups) == 0 {
		return
	}

	for i := range rec.medications {
		med := &rec.medications[i]
		if !IsMedicationEligible(med) {
			continue
		}
		at, ok := ParseMedicationTime(med.Time.String)
		if !ok {
			continue
		}

		for _, grp := range groups {
			if len(grp.Tokens) == 0 {
				continue
			}
			due, ok := MatchDue(nowUTC, med.LastTaken, at, grp.OffsetMinutes, lead)
			if !ok {
				continue
			}

			dueMinute := FormatUTCMinute(due)
			key := BuildDispatchKey(userID, med.MedicationID, grp.OffsetMinutes, lead, due)
			if !s.tryCreateDispatchLock(ctx, &domain.DispatchLock{
				DispatchKey:      key,
				UserID:           userID,
				MedicationID:     med.MedicationID,
				DueAtLocalMinute: dueMinute,
				CreatedAt:        nowUTC,
			}) {
				t.dispatchesSkipped.Add(1)
				continue
			}

			res := SendMulticast(ctx, s.gateway, s.logger, s.chunkSize, grp.Tokens,
				domain.PushNotification{Title: ReminderTitle, Body: body},
				map[string]string{
					"medicationId":     med.MedicationID,
					"userId":           userID,
					"dueAtLocalMinute": dueMinute,
					"reminderInterval": interval,
				},
			)
			t.remindersSent.Add(int64(res.SuccessCount))
			t.remindersFailed.Add(int64(res.FailureCount))
		}
	}
}

// loadUser reads the three per-user collections concurrently. A missing
// preferences record resolves to defaults.
func (s *service) loadUser(ctx context.Context, userID string) (*userRecords, error) {
	rec := &userRecords{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meds, err := s.medications.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("list medications: %w", err)
		}
		rec.medications = meds
		return nil
	})
	g.Go(func() error {
		targets, err := s.tokens.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("list notification tokens: %w", err)
		}
		rec.targets = targets
		return nil
	})
	g.Go(func() error {
		prefs, err := s.preferences.Get(gctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			rec.preferences = &domain.Preferences{UserID: userID}
			return nil
		}
		if err != nil {
			return fmt.Errorf("get preferences: %w", err)
		}
		rec.preferences = prefs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if rec.preferences == nil {
		rec.preferences = &domain.Preferences{UserID: userID}
	}
	return rec, nil
}

// tryCreateDispatchLock claims the occurrence. Anything other than a fresh
// claim returns false; store failures are logged and never lead to a send.
func (s *service) tryCreateDispatchLock(ctx context.Context, lock *domain.DispatchLock) bool {
	if s.lockTTL > 0 {
		lock.ExpiresAt = lock.CreatedAt.Add(s.lockTTL).Unix()
	}
	outcome, err := s.locks.Claim(ctx, lock)
	switch outcome {
	case domain.ClaimAcquired:
		return true
	case domain.ClaimConflict:
		s.logger.Debug("dispatch already claimed", "dispatch_key", lock.DispatchKey)
		return false
	default:
		s.logger.Warn("dispatch lock create failed", "dispatch_key", lock.DispatchKey, "err", err)
		return false
	}
}
