package kvstore_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresStoreSuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a postgres container")
	}
	suite.Run(t, new(postgresStoreSuite))
}

// before all tests in the suite
func (suite *postgresStoreSuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, err = postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts("../migrations/01_kv_entries.up.sql"),
	)
	suite.Require().NoError(err)

	connStr, err := suite.container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	// init script already created the table, Migrate must be repeatable
	suite.Require().NoError(kvstore.Migrate(ctx, suite.pool))
}

// after all tests in the suite
func (suite *postgresStoreSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *postgresStoreSuite) TestBehaviour() {
	store, err := kvstore.NewPostgres(suite.pool, uuid.MustParse(gofakeit.UUID()))
	suite.Require().NoError(err)

	exerciseKVStore(suite.T(), store)
}

func (suite *postgresStoreSuite) TestNewPostgres() {
	tests := []struct {
		name      string
		pool      *pgxpool.Pool
		ownerID   uuid.UUID
		wantError string
	}{
		{
			name:    "valid owner: ok",
			pool:    suite.pool,
			ownerID: uuid.MustParse(gofakeit.UUID()),
		},
		{
			name:      "nil owner: error",
			pool:      suite.pool,
			ownerID:   uuid.Nil,
			wantError: "ownerID is empty",
		},
		{
			name:      "nil pool: error",
			ownerID:   uuid.MustParse(gofakeit.UUID()),
			wantError: "pool is nil",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := kvstore.NewPostgres(tt.pool, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(suite.T(), err, tt.wantError)
				return
			}
			require.NoError(suite.T(), err)
		})
	}
}

func (suite *postgresStoreSuite) TestOwnersAreIsolated() {
	t := suite.T()
	ctx := t.Context()

	alice, err := kvstore.NewPostgres(suite.pool, uuid.MustParse(gofakeit.UUID()))
	require.NoError(t, err)

	bob, err := kvstore.NewPostgres(suite.pool, uuid.MustParse(gofakeit.UUID()))
	require.NoError(t, err)

	require.NoError(t, alice.Update(ctx, "cart", func([]byte, bool) ([]byte, error) {
		return []byte(`{"1":{"id":1,"quantity":1}}`), nil
	}))

	_, found, err := bob.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, found)

	value, found, err := alice.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"1":{"id":1,"quantity":1}}`, string(value))
}

func (suite *postgresStoreSuite) TestUpdateRejectsInvalidJSON() {
	t := suite.T()
	ctx := t.Context()

	store, err := kvstore.NewPostgres(suite.pool, uuid.MustParse(gofakeit.UUID()))
	require.NoError(t, err)

	err = store.Update(ctx, "cart", func([]byte, bool) ([]byte, error) {
		return []byte(`{not json`), nil
	})
	require.EqualError(t, err, "value of key[cart] is not valid JSON")

	_, found, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, found)
}
