package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/2beens/coachtracker/internal"
	"github.com/2beens/coachtracker/internal/config"
	"github.com/2beens/coachtracker/internal/db"
	"github.com/2beens/coachtracker/pkg"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9000
	serverHost = "localhost"
	dbName     = "coachtracker"

	coachEmail    = "coach@coachtracker.test"
	coachPassword = "coach-pass"
	studentID     = "student-jane"
	exerciseID    = "exercise-squat"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) (_ *Suite) {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}
	suite.dockerPool.MaxWait = 2 * time.Minute

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := suite.redisSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	// the catalog is loaded on server start, so seed before that
	if err := suite.seed(); err != nil {
		suite.cleanup()
		log.Fatalf("failed to seed postgres: %s", err)
	}

	cfg := getTestConfig(redisPort, pgPort)
	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			DBPassword:              "postgres",
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(ctx, cfg.Host, cfg.Port)

	return suite
}

func (s *Suite) cleanup() {
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}

func getTestConfig(redisPort, postgresPort string) *config.Config {
	return &config.Config{
		Host:                        serverHost,
		Port:                        serverPort,
		Environment:                 "test",
		LogLevel:                    "debug",
		LogToStdout:                 true,
		RedisHost:                   "localhost",
		RedisPort:                   redisPort,
		PostgresPort:                postgresPort,
		PostgresHost:                "localhost",
		PostgresDBName:              dbName,
		RunMigrations:               true,
		MigrationsPath:              "../migrations",
		PrometheusMetricsHost:       "localhost",
		PrometheusMetricsPort:       "9001",
		LoginRateLimitAllowedPerMin: 60,
		AuthSessionTTL:              config.Duration{Duration: time.Hour},
		HistoryCacheSizeMB:          1,
		HistoryCacheTTL:             config.Duration{Duration: time.Minute},
		CatalogRefreshInterval:      config.Duration{Duration: time.Hour},
		MCPEnabled:                  true,
	}
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "coachtracker-redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		redisResource.Close()
	})

	redisPort := redisResource.GetPort("6379/tcp")
	return redisPort, nil
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + dbName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := db.ConnString(db.NewDBPoolParams{
		DBHost:     "localhost",
		DBPort:     pgPort,
		DBName:     dbName,
		DBPassword: "postgres",
	})

	// postgres accepts connections a moment after the container starts
	if err := s.dockerPool.Retry(func() error {
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return err
		}
		s.DB = conn
		return nil
	}); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	if err := db.RunMigrations(dsn, "../migrations"); err != nil {
		return "", fmt.Errorf("run migrations: %s", err)
	}

	return pgPort, nil
}

func (s *Suite) seed() error {
	passwordHash, err := pkg.HashPassword(coachPassword)
	if err != nil {
		return fmt.Errorf("hash password: %s", err)
	}

	res, err := s.DB.Exec(seedSQL, coachEmail, passwordHash, studentID, exerciseID)
	if err != nil {
		return fmt.Errorf("run seed script: %s", err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %s", err)
	}
	log.Printf("postgres seed result: %d\n", numRows)

	return nil
}

const seedSQL = `
WITH coach AS (
    INSERT INTO persona (id, name, email, role, password_hash)
    VALUES ('coach-ana', 'Ana', $1, 'COACH', $2)
), student AS (
    INSERT INTO persona (id, name, role)
    VALUES ($3, 'Jane', 'STUDENT')
)
INSERT INTO exercise (id, name, muscle_group, default_rest_seconds)
VALUES ($4, 'Squat', 'Legs', 180);
`
