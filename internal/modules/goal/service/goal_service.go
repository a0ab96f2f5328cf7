package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"dwell/internal/modules/goal/domain"
	goalout "dwell/internal/modules/goal/port/out"
	apperrors "dwell/internal/platform/errors"
)

// GoalService reads and writes user settings with a small cache so that the
// trackers' hot paths never touch the store. Invalidate drops the cache when
// settings may have changed externally.
type GoalService struct {
	store goalout.SettingStore

	mu         sync.Mutex
	goalValid  bool
	goal       int
	goalSet    bool
	changedFns []func()
}

func NewGoalService(store goalout.SettingStore) *GoalService {
	return &GoalService{store: store}
}

func (s *GoalService) ScreenTimeGoal(ctx context.Context) (int, bool, error) {
	s.mu.Lock()
	if s.goalValid {
		goal, ok := s.goal, s.goalSet
		s.mu.Unlock()
		return goal, ok, nil
	}
	s.mu.Unlock()

	raw, err := s.store.Get(ctx, domain.KeyScreenTimeGoal)
	if errors.Is(err, apperrors.ErrSettingMissing) {
		s.cacheGoal(0, false)
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		s.cacheGoal(0, false)
		return 0, false, nil
	}
	s.cacheGoal(minutes, true)
	return minutes, true, nil
}

func (s *GoalService) SetScreenTimeGoal(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		if err := s.store.Delete(ctx, domain.KeyScreenTimeGoal); err != nil {
			return err
		}
		s.cacheGoal(0, false)
	} else {
		if err := s.store.Put(ctx, domain.KeyScreenTimeGoal, strconv.Itoa(minutes)); err != nil {
			return err
		}
		s.cacheGoal(minutes, true)
	}

	s.mu.Lock()
	fns := make([]func(), len(s.changedFns))
	copy(fns, s.changedFns)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return nil
}

func (s *GoalService) NotificationsEnabled(ctx context.Context) (bool, error) {
	raw, err := s.store.Get(ctx, domain.KeyGoalNotifications)
	if errors.Is(err, apperrors.ErrSettingMissing) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return true, nil
	}
	return enabled, nil
}

func (s *GoalService) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	return s.store.Put(ctx, domain.KeyGoalNotifications, strconv.FormatBool(enabled))
}

func (s *GoalService) SoundThresholdDB(ctx context.Context) (float64, error) {
	raw, err := s.store.Get(ctx, domain.KeySoundThresholdDB)
	if errors.Is(err, apperrors.ErrSettingMissing) {
		return domain.DefaultSoundThresholdDB, nil
	}
	if err != nil {
		return domain.DefaultSoundThresholdDB, err
	}
	db, err := strconv.ParseFloat(raw, 64)
	if err != nil || db <= 0 {
		return domain.DefaultSoundThresholdDB, nil
	}
	return db, nil
}

func (s *GoalService) SoundThresholdDuration(ctx context.Context) (time.Duration, error) {
	raw, err := s.store.Get(ctx, domain.KeySoundThresholdMinutes)
	if errors.Is(err, apperrors.ErrSettingMissing) {
		return domain.DefaultSoundThresholdMinutes * time.Minute, nil
	}
	if err != nil {
		return domain.DefaultSoundThresholdMinutes * time.Minute, err
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return domain.DefaultSoundThresholdMinutes * time.Minute, nil
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (s *GoalService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goalValid = false
}

func (s *GoalService) OnGoalChanged(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changedFns = append(s.changedFns, fn)
}

func (s *GoalService) cacheGoal(minutes int, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = minutes
	s.goalSet = set
	s.goalValid = true
}
