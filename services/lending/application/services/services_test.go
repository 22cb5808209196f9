package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/libitemsflow/pkg/app"
	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/pkg/envelope"
	"github.com/ghuser/libitemsflow/pkg/logger"
	"github.com/ghuser/libitemsflow/services/lending/application/services"
	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/memory"
)

// 2025-06-10 09:30 UTC
var now = time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc    *services.Services
	stores services.Stores
	clock  *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	stores := services.Stores{
		Items:  memory.NewItemRepository(store),
		Loans:  memory.NewLoanRepository(store),
		Ledger: memory.NewLedger(store),
	}
	clk := clock.NewFixed(now)
	a := &app.Application{Logger: logger.Nop(), Clock: clk, Location: time.UTC}
	return &fixture{svc: services.NewWithStores(a, stores, nil), stores: stores, clock: clk}
}

func (f *fixture) today() models.Date {
	return models.Today(f.clock.Now(), time.UTC)
}

func (f *fixture) createItem(t *testing.T, name string) *models.Item {
	t.Helper()
	item, err := f.svc.Items.Create(context.Background(), services.CreateItemInput{
		Name:     name,
		Category: "Laptop",
		AssetTag: "LAP-" + uuid.NewString()[:8],
		Location: "Room 101",
		Status:   "AVAILABLE",
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) loanInput(itemID uuid.UUID, due models.Date) services.CreateLoanInput {
	return services.CreateLoanInput{
		ItemID:          itemID.String(),
		BorrowerName:    "Bruno",
		BorrowerUnit:    "IT",
		BorrowerContact: "bruno@example.com",
		LoanDate:        f.today().AddDays(-10).String(),
		DueDate:         due.String(),
	}
}

// assertAvailabilityInvariant checks that every item is ON_LOAN exactly when
// one of its loans is stored ACTIVE.
func (f *fixture) assertAvailabilityInvariant(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	items, err := f.stores.Items.List(ctx)
	require.NoError(t, err)
	for _, item := range items {
		active, err := f.stores.Loans.List(ctx, repositories.LoanFilter{
			ItemID:       item.ID,
			StoredStatus: models.LoanActive,
		})
		require.NoError(t, err)
		require.LessOrEqual(t, len(active), 1, "item %s has %d active loans", item.ID, len(active))
		assert.Equal(t, len(active) == 1, item.Status == models.ItemOnLoan,
			"item %s status %s with %d active loans", item.ID, item.Status, len(active))
	}
}

func containsLoan(loans []*models.Loan, id uuid.UUID) bool {
	for _, l := range loans {
		if l.ID == id {
			return true
		}
	}
	return false
}

func TestScenario_LendReturnLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item := f.createItem(t, "Laptop X")
	assert.Equal(t, models.ItemAvailable, item.Status)
	f.assertAvailabilityInvariant(t)

	loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(7)))
	require.NoError(t, err)
	assert.Equal(t, models.LoanActive, loan.Status)
	f.assertAvailabilityInvariant(t)

	active, err := f.svc.Queries.ListLoans(ctx, services.ListLoansInput{Status: "ACTIVE"})
	require.NoError(t, err)
	assert.True(t, containsLoan(active, loan.ID))

	_, err = f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(7)))
	require.Error(t, err)
	assert.Equal(t, envelope.CodeItemUnavailable, domain.ErrorCode(err))
	f.assertAvailabilityInvariant(t)

	returned, err := f.svc.Loans.ReturnLoan(ctx, services.ReturnLoanInput{LoanID: loan.ID.String(), Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t, models.LoanReturned, returned.Status)
	assert.Equal(t, f.today(), returned.ReturnDate)
	assert.Equal(t, "ok", returned.ReturnNote)
	f.assertAvailabilityInvariant(t)

	got, err := f.svc.Items.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemAvailable, got.Status)

	returnedList, err := f.svc.Queries.ListLoans(ctx, services.ListLoansInput{Status: "RETURNED"})
	require.NoError(t, err)
	assert.True(t, containsLoan(returnedList, loan.ID))

	_, err = f.svc.Loans.ReturnLoan(ctx, services.ReturnLoanInput{LoanID: loan.ID.String()})
	require.Error(t, err)
	assert.Equal(t, envelope.CodeLoanNotReturnable, domain.ErrorCode(err))
	f.assertAvailabilityInvariant(t)
}

func TestScenario_OverdueIsDerivedAtReadTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item := f.createItem(t, "Projector Y")
	loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(-1)))
	require.NoError(t, err)
	assert.Equal(t, models.LoanActive, loan.Status, "write response carries the stored status")

	overdue, err := f.svc.Queries.ListLoans(ctx, services.ListLoansInput{Status: "OVERDUE"})
	require.NoError(t, err)
	require.True(t, containsLoan(overdue, loan.ID))
	assert.Equal(t, models.LoanOverdue, overdue[0].Status)

	active, err := f.svc.Queries.ListLoans(ctx, services.ListLoansInput{Status: "ACTIVE"})
	require.NoError(t, err)
	assert.False(t, containsLoan(active, loan.ID))

	stored, err := f.stores.Loans.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanActive, stored.Status, "OVERDUE must never be persisted")

	// Returning an overdue loan is allowed; it is stored ACTIVE.
	_, err = f.svc.Loans.ReturnLoan(ctx, services.ReturnLoanInput{LoanID: loan.ID.String()})
	require.NoError(t, err)
	overdue, err = f.svc.Queries.ListLoans(ctx, services.ListLoansInput{Status: "OVERDUE"})
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestOverdue_FollowsTheClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item := f.createItem(t, "Camera")
	loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today()))
	require.NoError(t, err)

	got, err := f.svc.Queries.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanActive, got.Status, "due today is not overdue")

	f.clock.Advance(24 * time.Hour)

	got, err = f.svc.Queries.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanOverdue, got.Status)
}

func TestOverdue_UsesCalendarTimezone(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	stores := services.Stores{
		Items:  memory.NewItemRepository(store),
		Loans:  memory.NewLoanRepository(store),
		Ledger: memory.NewLedger(store),
	}
	// 2025-06-10 23:30 UTC is already 2025-06-11 in Tokyo.
	clk := clock.NewFixed(time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC))
	tokyo := time.FixedZone("JST", 9*60*60)
	svc := services.NewWithStores(&app.Application{Logger: logger.Nop(), Clock: clk, Location: tokyo}, stores, nil)

	item, err := svc.Items.Create(ctx, services.CreateItemInput{Name: "Tripod", Category: "AV", AssetTag: "TRI-1"})
	require.NoError(t, err)
	loan, err := svc.Loans.CreateLoan(ctx, services.CreateLoanInput{
		ItemID:          item.ID.String(),
		BorrowerName:    "Kei",
		BorrowerContact: "kei@example.com",
		LoanDate:        "2025-06-01",
		DueDate:         "2025-06-10",
	})
	require.NoError(t, err)

	got, err := svc.Queries.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanOverdue, got.Status)
}

func TestCreateItem_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   services.CreateItemInput
	}{
		{"missing name", services.CreateItemInput{Category: "Laptop", AssetTag: "A1"}},
		{"blank name", services.CreateItemInput{Name: "   ", Category: "Laptop", AssetTag: "A1"}},
		{"control character", services.CreateItemInput{Name: "Lap\ttop", Category: "Laptop", AssetTag: "A1"}},
		{"missing category", services.CreateItemInput{Name: "Laptop", AssetTag: "A1"}},
		{"missing asset tag", services.CreateItemInput{Name: "Laptop", Category: "Laptop", AssetTag: " "}},
		{"caller sets ON_LOAN", services.CreateItemInput{Name: "Laptop", Category: "Laptop", AssetTag: "A1", Status: "ON_LOAN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Items.Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)

			items, err := f.svc.Queries.ListItems(context.Background())
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestCreateItem_TrimsAndDefaultsStatus(t *testing.T) {
	f := newFixture(t)
	item, err := f.svc.Items.Create(context.Background(), services.CreateItemInput{
		Name: "  Laptop  ", Category: " Laptop ", AssetTag: " A1 ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ItemName("Laptop"), item.Name)
	assert.Equal(t, "A1", item.AssetTag)
	assert.Equal(t, models.ItemAvailable, item.Status)
	assert.Equal(t, now, item.CreatedAt)
}

func TestGetItem_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Items.Get(context.Background(), uuid.New())
	assert.Equal(t, envelope.CodeNotFound, domain.ErrorCode(err))
}

func TestCreateLoan_Validation(t *testing.T) {
	f := newFixture(t)
	item := f.createItem(t, "Laptop")
	valid := f.loanInput(item.ID, f.today().AddDays(7))

	tests := []struct {
		name   string
		mutate func(*services.CreateLoanInput)
		code   string
	}{
		{"missing item id", func(in *services.CreateLoanInput) { in.ItemID = "" }, envelope.CodeValidation},
		{"non-uuid item id", func(in *services.CreateLoanInput) { in.ItemID = "I-1" }, envelope.CodeNotFound},
		{"non-uuid item id with bad date", func(in *services.CreateLoanInput) { in.ItemID = "I-1"; in.DueDate = "x" }, envelope.CodeValidation},
		{"unknown item", func(in *services.CreateLoanInput) { in.ItemID = uuid.NewString() }, envelope.CodeNotFound},
		{"missing borrower", func(in *services.CreateLoanInput) { in.BorrowerName = " " }, envelope.CodeValidation},
		{"missing contact", func(in *services.CreateLoanInput) { in.BorrowerContact = "" }, envelope.CodeValidation},
		{"bad loan date", func(in *services.CreateLoanInput) { in.LoanDate = "10/06/2025" }, envelope.CodeValidation},
		{"missing due date", func(in *services.CreateLoanInput) { in.DueDate = "" }, envelope.CodeValidation},
		{"impossible due date", func(in *services.CreateLoanInput) { in.DueDate = "2025-02-30" }, envelope.CodeValidation},
		{"due before loan", func(in *services.CreateLoanInput) { in.DueDate = "2000-01-01" }, envelope.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := f.svc.Loans.CreateLoan(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.ErrorCode(err), "got %v", err)
			f.assertAvailabilityInvariant(t)
		})
	}

	got, err := f.svc.Items.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemAvailable, got.Status)
}

func TestReturnLoan_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.createItem(t, "Laptop")
	loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(7)))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   services.ReturnLoanInput
		code string
	}{
		{"unknown loan", services.ReturnLoanInput{LoanID: uuid.NewString()}, envelope.CodeLoanNotReturnable},
		{"missing loan id", services.ReturnLoanInput{}, envelope.CodeValidation},
		{"blank loan id", services.ReturnLoanInput{LoanID: "  "}, envelope.CodeValidation},
		{"non-uuid loan id", services.ReturnLoanInput{LoanID: "L-20250610-001"}, envelope.CodeLoanNotReturnable},
		{"non-uuid loan id with bad date", services.ReturnLoanInput{LoanID: "L-20250610-001", ReturnDate: "yesterday"}, envelope.CodeValidation},
		{"malformed return date", services.ReturnLoanInput{LoanID: loan.ID.String(), ReturnDate: "yesterday"}, envelope.CodeValidation},
		{"return before loan date", services.ReturnLoanInput{LoanID: loan.ID.String(), ReturnDate: "2000-01-01"}, envelope.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Loans.ReturnLoan(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.ErrorCode(err), "got %v", err)
		})
	}

	// None of the failures touched the loan.
	stored, err := f.stores.Loans.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanActive, stored.Status)
	f.assertAvailabilityInvariant(t)
}

func TestReturnLoan_ExplicitDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.createItem(t, "Laptop")
	loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(7)))
	require.NoError(t, err)

	returnDate := f.today().AddDays(-2)
	returned, err := f.svc.Loans.ReturnLoan(ctx, services.ReturnLoanInput{
		LoanID:     loan.ID.String(),
		ReturnDate: returnDate.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, returnDate, returned.ReturnDate)
	assert.Equal(t, loan.LoanDate, returned.LoanDate)
	assert.Equal(t, loan.DueDate, returned.DueDate)
}

func TestItemCanBeLentAgainAfterReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.createItem(t, "Laptop")

	for range 3 {
		loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(7)))
		require.NoError(t, err)
		_, err = f.svc.Loans.ReturnLoan(ctx, services.ReturnLoanInput{LoanID: loan.ID.String()})
		require.NoError(t, err)
		f.assertAvailabilityInvariant(t)
	}

	history, err := f.svc.Queries.ListLoans(ctx, services.ListLoansInput{ItemID: item.ID.String()})
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].Seq, history[i].Seq, "insertion order")
	}
}

func TestListLoans_Filters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.createItem(t, "A")
	b := f.createItem(t, "B")
	loanA, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(a.ID, f.today().AddDays(3)))
	require.NoError(t, err)
	loanB, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(b.ID, f.today().AddDays(-3)))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   services.ListLoansInput
		want []uuid.UUID
	}{
		{"all", services.ListLoansInput{}, []uuid.UUID{loanA.ID, loanB.ID}},
		{"active", services.ListLoansInput{Status: "ACTIVE"}, []uuid.UUID{loanA.ID}},
		{"overdue lowercase", services.ListLoansInput{Status: "overdue"}, []uuid.UUID{loanB.ID}},
		{"returned", services.ListLoansInput{Status: "RETURNED"}, nil},
		{"by item", services.ListLoansInput{ItemID: b.ID.String()}, []uuid.UUID{loanB.ID}},
		{"by non-uuid item", services.ListLoansInput{ItemID: "I-1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loans, err := f.svc.Queries.ListLoans(ctx, tt.in)
			require.NoError(t, err)
			var got []uuid.UUID
			for _, l := range loans {
				got = append(got, l.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = f.svc.Queries.ListLoans(ctx, services.ListLoansInput{Status: "LOST"})
	assert.Equal(t, envelope.CodeValidation, domain.ErrorCode(err))
}

func TestCreateLoan_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.createItem(t, "Laptop")
	in := f.loanInput(item.ID, f.today().AddDays(7))

	const workers = 50
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		wins        int
		unavailable int
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.Loans.CreateLoan(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrItemUnavailable):
				unavailable++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, unavailable)
	f.assertAvailabilityInvariant(t)
}

func TestReturnLoan_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.createItem(t, "Laptop")
	loan, err := f.svc.Loans.CreateLoan(ctx, f.loanInput(item.ID, f.today().AddDays(7)))
	require.NoError(t, err)

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Loans.ReturnLoan(ctx, services.ReturnLoanInput{LoanID: loan.ID.String()})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, domain.ErrLoanNotReturnable) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, rejected)
	f.assertAvailabilityInvariant(t)
}

func TestNew_DefaultsToMemoryStore(t *testing.T) {
	svc := services.New(&app.Application{Logger: logger.Nop()})
	item, err := svc.Items.Create(context.Background(), services.CreateItemInput{
		Name: "Laptop", Category: "Laptop", AssetTag: "A1",
	})
	require.NoError(t, err)
	items, err := svc.Queries.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}
