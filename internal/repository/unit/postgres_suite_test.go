//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/you-humble/supplement-inventory/internal/migrator"
	"github.com/you-humble/supplement-inventory/internal/model"
	unitrepo "github.com/you-humble/supplement-inventory/internal/repository/unit"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

const (
	pgImage = "postgres:17.0-alpine3.20"

	pgUser       = "inventory-user"
	pgPass       = "inventory-pass"
	pgDB         = "inventory-db"
	migrationDir = "../../../migrations"
)

var (
	ctx context.Context

	pgC  *postgres.PostgresContainer
	pool *pgxpool.Pool
)

func TestPostgresUnitRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Postgres Unit Repository Suite")
}

var _ = BeforeSuite(func() {
	ctx = context.Background()
	logger.SetNopLogger()

	By("starting postgres container")
	var err error
	pgC, err = postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDB),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPass),
		tc.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	pool, err = pgxpool.New(ctx, dsn)
	Expect(err).NotTo(HaveOccurred())

	Eventually(func(g Gomega) {
		g.Expect(pool.Ping(ctx)).To(Succeed())
	}).WithTimeout(10 * time.Second).WithPolling(200 * time.Millisecond).Should(Succeed())

	By("running migrations")
	m := migrator.NewMigrator(stdlib.OpenDBFromPool(pool), migrationDir)
	Expect(m.Up(ctx)).To(Succeed())

	v, err := m.Version(ctx)
	Expect(err).NotTo(HaveOccurred())
	Expect(v).To(BeNumerically(">=", 1))
	Expect(m.Close()).To(Succeed())
})

var _ = BeforeEach(func() {
	_, err := pool.Exec(ctx, "TRUNCATE units")
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	if pool != nil {
		pool.Close()
	}
	if pgC != nil {
		_ = pgC.Terminate(ctx)
	}
})

func newUnits(productID string, n int) []*model.Unit {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return lo.Times(n, func(_ int) *model.Unit {
		return &model.Unit{
			ID:          gofakeit.UUID(),
			ProductID:   productID,
			SKU:         gofakeit.LetterN(8),
			LotCode:     gofakeit.LetterN(5),
			WarehouseID: "wh-origin",
			Country:     gofakeit.CountryAbr(),
			State:       model.StateReceivedOrigin,
			Cost:        decimal.RequireFromString("10.5025"),
			ReceivedAt:  lo.ToPtr(now),
			UpdatedAt:   lo.ToPtr(now),
		}
	})
}

var _ = Describe("Postgres unit repository", func() {
	var repo interface {
		UnitByID(ctx context.Context, id string) (*model.Unit, error)
		ListByProduct(ctx context.Context, productID string) ([]*model.Unit, error)
		CreateBatch(ctx context.Context, units []*model.Unit) error
		UpdateLifecycle(ctx context.Context, u *model.Unit, from model.UnitState) error
	}

	BeforeEach(func() {
		repo = unitrepo.NewPostgresUnitRepository(pool)
	})

	It("stores exact NUMERIC costs and leaves unset timestamps null", func() {
		units := newUnits("prod-1", 3)
		units[0].ExpirationDate = lo.ToPtr(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC))
		Expect(repo.CreateBatch(ctx, units)).To(Succeed())

		got, err := repo.UnitByID(ctx, units[0].ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Cost.Equal(units[0].Cost)).To(BeTrue(), "cost %s", got.Cost)
		Expect(got.ExpirationDate).NotTo(BeNil())
		Expect(got.ExpirationDate.Equal(*units[0].ExpirationDate)).To(BeTrue())
		Expect(got.TransferredAt).To(BeNil())
		Expect(got.SoldAt).To(BeNil())
		Expect(got.ReceivedAt.Equal(*units[0].ReceivedAt)).To(BeTrue())

		noExpiry, err := repo.UnitByID(ctx, units[1].ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(noExpiry.ExpirationDate).To(BeNil())

		listed, err := repo.ListByProduct(ctx, "prod-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(listed).To(HaveLen(3))
	})

	It("lets only one transition from the same state win", func() {
		units := newUnits("prod-2", 1)
		Expect(repo.CreateBatch(ctx, units)).To(Succeed())

		first := *units[0]
		first.State = model.StateInTransitOrigin
		first.TransferredAt = lo.ToPtr(time.Now().UTC().Truncate(time.Microsecond))
		Expect(repo.UpdateLifecycle(ctx, &first, model.StateReceivedOrigin)).To(Succeed())

		second := *units[0]
		second.State = model.StateDamaged
		second.Reason = "crushed"
		err := repo.UpdateLifecycle(ctx, &second, model.StateReceivedOrigin)
		Expect(err).To(MatchError(model.ErrInvalidTransition))

		got, err := repo.UnitByID(ctx, units[0].ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.State).To(Equal(model.StateInTransitOrigin))
		Expect(got.Reason).To(BeEmpty())
		Expect(got.TransferredAt).NotTo(BeNil())
	})

	It("reports missing units", func() {
		_, err := repo.UnitByID(ctx, gofakeit.UUID())
		Expect(err).To(MatchError(model.ErrNotFound))

		ghost := newUnits("prod-3", 1)[0]
		err = repo.UpdateLifecycle(ctx, ghost, model.StateReceivedOrigin)
		Expect(err).To(MatchError(model.ErrNotFound))
	})
})
