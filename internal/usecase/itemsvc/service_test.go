package itemsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/internal/repo"
)

type countingRecorder struct {
	mu sync.Mutex
	n  int
}

func (c *countingRecorder) ItemCreated() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

// failingStorage отдаёт заранее заданные ошибки и считает вызовы Save.
type failingStorage struct {
	records []models.Record
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStorage) EnsureExists(context.Context) error { return nil }

func (f *failingStorage) Load(context.Context) ([]models.Record, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return models.CloneRecords(f.records), nil
}

func (f *failingStorage) Save(_ context.Context, records []models.Record) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = models.CloneRecords(records)
	return nil
}

func rawRecords(raw ...string) []models.Record {
	out := make([]models.Record, len(raw))
	for i, r := range raw {
		out[i] = models.Record(r)
	}
	return out
}

func decodeItems(t *testing.T, records []models.Record) []models.Item {
	t.Helper()
	items := make([]models.Item, len(records))
	for i, rec := range records {
		if err := json.Unmarshal(rec, &items[i]); err != nil {
			t.Fatalf("record %d %s: %v", i, rec, err)
		}
	}
	return items
}

func newService(t *testing.T, st Storage, rec CreatedRecorder) *Items {
	t.Helper()
	svc := New(Deps{Storage: st, Logger: log.New(io.Discard, "", 0), Metrics: rec})
	if err := svc.Prepare(context.Background()); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	return svc
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		want    string
		wantErr bool
	}{
		{name: "empty", ids: nil, want: "1"},
		{name: "single", ids: []string{"1"}, want: "2"},
		{name: "gap uses max", ids: []string{"1", "7", "3"}, want: "8"},
		{name: "unsorted", ids: []string{"10", "2"}, want: "11"},
		{name: "leading zeros", ids: []string{"007"}, want: "8"},
		{name: "surrounding spaces", ids: []string{" 4 "}, want: "5"},
		{name: "negative max", ids: []string{"-5", "-3"}, want: "-2"},
		{name: "non numeric", ids: []string{"1", "abc"}, wantErr: true},
		{name: "empty id", ids: []string{""}, wantErr: true},
		{name: "fractional", ids: []string{"1.5"}, wantErr: true},
		{name: "max int64", ids: []string{"9223372036854775807"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]models.Record, len(tt.ids))
			for i, id := range tt.ids {
				records[i] = models.Record(fmt.Sprintf(`{"id":%q,"name":"x","quantity":1}`, id))
			}
			got, err := nextID(records)
			if tt.wantErr {
				if !errors.Is(err, models.ErrTypeConversion) {
					t.Fatalf("expected ErrTypeConversion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("nextID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreate_EchoesPayloadAndAssignsFirstID(t *testing.T) {
	rec := &countingRecorder{}
	svc := newService(t, repo.NewMemoryStore(), rec)

	got, err := svc.Create(context.Background(), models.NewItem{Name: "milk", Quantity: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := models.Item{ID: "1", Name: "milk", Quantity: 2}
	if got != want {
		t.Fatalf("created %+v, want %+v", got, want)
	}
	if rec.n != 1 {
		t.Fatalf("recorder called %d times, want 1", rec.n)
	}
}

func TestCreate_SequentialIDsInOrder(t *testing.T) {
	svc := newService(t, repo.NewMemoryStore(), nil)
	ctx := context.Background()

	const n = 25
	for i := 0; i < n; i++ {
		if _, err := svc.Create(ctx, models.NewItem{Name: fmt.Sprintf("item-%d", i), Quantity: i}); err != nil {
			t.Fatalf("create #%d: %v", i, err)
		}
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	items := decodeItems(t, records)
	if len(items) != n {
		t.Fatalf("got %d items, want %d", len(items), n)
	}
	for i, it := range items {
		if it.ID != fmt.Sprint(i+1) || it.Name != fmt.Sprintf("item-%d", i) || it.Quantity != i {
			t.Fatalf("item %d = %+v", i, it)
		}
	}
}

func TestCreate_ContinuesFromStoredMax(t *testing.T) {
	st := repo.NewMemoryStore()
	seed := rawRecords(`{"id":"5","name":"a","quantity":1}`, `{"id":"2","name":"b","quantity":1}`)
	if err := st.Save(context.Background(), seed); err != nil {
		t.Fatal(err)
	}
	svc := newService(t, st, nil)

	got, err := svc.Create(context.Background(), models.NewItem{Name: "c", Quantity: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "6" {
		t.Fatalf("id = %q, want 6", got.ID)
	}
}

func TestNextID_NumericAndIrregularRecords(t *testing.T) {
	records := rawRecords(
		`{"id":1,"name":"milk","quantity":2}`,
		`{"id":"6","name":"bread"}`,
		`{"id":3.0,"name":"eggs","quantity":12,"note":"x"}`,
	)
	got, err := nextID(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "7" {
		t.Fatalf("nextID = %q, want 7", got)
	}
}

func TestCreate_KeepsStoredRecordsVerbatim(t *testing.T) {
	stored := rawRecords(
		`{"id":"1","name":"milk","quantity":2,"note":"x"}`,
		`{"id":"2","name":"bread"}`,
		`{"id":3,"name":"eggs","quantity":12}`,
	)
	st := &failingStorage{records: models.CloneRecords(stored)}
	svc := newService(t, st, nil)

	got, err := svc.Create(context.Background(), models.NewItem{Name: "tea", Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "4" {
		t.Fatalf("id = %q, want 4", got.ID)
	}

	if len(st.records) != len(stored)+1 {
		t.Fatalf("got %d records, want %d", len(st.records), len(stored)+1)
	}
	for i := range stored {
		if string(st.records[i]) != string(stored[i]) {
			t.Fatalf("record %d rewritten: %s, want %s", i, st.records[i], stored[i])
		}
	}
	if want := `{"id":"4","name":"tea","quantity":1}`; string(st.records[3]) != want {
		t.Fatalf("appended record = %s, want %s", st.records[3], want)
	}
}

func TestCreate_NonNumericIDLeavesStoreUntouched(t *testing.T) {
	st := &failingStorage{records: rawRecords(`{"id":"x1","name":"bad","quantity":1}`)}
	svc := newService(t, st, nil)

	_, err := svc.Create(context.Background(), models.NewItem{Name: "milk", Quantity: 2})
	if !errors.Is(err, models.ErrTypeConversion) {
		t.Fatalf("expected ErrTypeConversion, got %v", err)
	}
	if st.saves != 0 {
		t.Fatalf("store written %d times on failure", st.saves)
	}
}

func TestCreate_LoadFailurePropagates(t *testing.T) {
	st := &failingStorage{loadErr: fmt.Errorf("%w: broken", models.ErrDataCorruption)}
	svc := newService(t, st, nil)

	_, err := svc.Create(context.Background(), models.NewItem{Name: "milk", Quantity: 2})
	if !errors.Is(err, models.ErrDataCorruption) {
		t.Fatalf("expected ErrDataCorruption, got %v", err)
	}
	if st.saves != 0 {
		t.Fatalf("store written %d times on failure", st.saves)
	}

	if _, err := svc.List(context.Background()); !errors.Is(err, models.ErrDataCorruption) {
		t.Fatalf("list: expected ErrDataCorruption, got %v", err)
	}
}

func TestCreate_SaveFailureNotRecorded(t *testing.T) {
	rec := &countingRecorder{}
	st := &failingStorage{saveErr: errors.New("disk full")}
	svc := newService(t, st, rec)

	if _, err := svc.Create(context.Background(), models.NewItem{Name: "milk", Quantity: 2}); err == nil {
		t.Fatal("expected save error")
	}
	if rec.n != 0 {
		t.Fatalf("failed create was recorded")
	}
}

func TestCreate_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	svc := newService(t, repo.NewMemoryStore(), nil)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.Create(ctx, models.NewItem{Name: fmt.Sprint(i), Quantity: i}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("create: %v", err)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	items := decodeItems(t, records)
	if len(items) != n {
		t.Fatalf("got %d items, want %d (lost update)", len(items), n)
	}
	seen := make(map[string]bool, n)
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[fmt.Sprint(i)] {
			t.Fatalf("id %d missing", i)
		}
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := newService(t, repo.NewMemoryStore(), nil)
	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if items == nil {
		t.Fatal("List returned nil slice")
	}
}
