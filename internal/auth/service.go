package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/catalog"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"
	"github.com/2beens/coachtracker/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 8 * time.Hour
	tokenLength      = 35
	sessionKeyPrefix = "coachtracker-session||"
	tokensSetKey     = "coachtracker-sessions"
)

var (
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrSessionExpired   = errors.New("session expired")
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

type personsRepo interface {
	GetCredentials(ctx context.Context, email string) (*catalog.Credentials, error)
	GetPerson(ctx context.Context, id string) (*catalog.Person, error)
}

// Service keeps login sessions in redis: one key per token holding the
// person id, expiring after the configured TTL, plus a set of all tokens.
type Service struct {
	redisClient *redis.Client
	repo        personsRepo
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
	repo personsRepo,
) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		repo:           repo,
		RandStringFunc: pkg.RandomToken,
	}
}

func (as *Service) TTL() time.Duration {
	return as.ttl
}

func (as *Service) Login(ctx context.Context, email, password string) (_ string, _ *catalog.Person, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	creds, err := as.repo.GetCredentials(ctx, email)
	if errors.Is(err, catalog.ErrNotFound) {
		return "", nil, ErrWrongCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("get credentials: %w", err)
	}
	if creds.PasswordHash == "" || !pkg.CheckPasswordHash(password, creds.PasswordHash) {
		return "", nil, ErrWrongCredentials
	}

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	if err := as.redisClient.Set(ctx, sessionKeyPrefix+token, creds.Person.ID, as.ttl).Err(); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", nil, fmt.Errorf("track session: %w", err)
	}

	return token, &creds.Person, nil
}

// CurrentUser resolves the token to the logged in person.
func (as *Service) CurrentUser(ctx context.Context, token string) (_ *catalog.Person, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.currentUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	personID, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	person, err := as.repo.GetPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", personID, err)
	}
	return person, nil
}

// Logout reports whether the token belonged to a live session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	deleted, err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return deleted > 0, nil
}

// TimeLeft returns how long the session behind token stays valid.
func (as *Service) TimeLeft(ctx context.Context, token string) (time.Duration, error) {
	ttl, err := as.redisClient.TTL(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return 0, err
	}
	// -2: key does not exist, -1: key without expiry
	if ttl == -2 {
		return 0, ErrSessionExpired
	}
	if ttl < 0 {
		return as.ttl, nil
	}
	return ttl, nil
}

// ScanAndClean drops tracked tokens whose session key has already expired.
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	for _, token := range sessionTokens {
		exists, err := as.redisClient.Exists(ctx, sessionKeyPrefix+token).Result()
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}
		if exists > 0 {
			continue
		}

		log.Debugf("auth service, removing expired token: %s", token)
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
		}
	}
}

// RunCleaner calls ScanAndClean every interval until ctx is done.
func (as *Service) RunCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			as.ScanAndClean(ctx)
		}
	}
}
