package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/creditgen/internal/domain/model"
)

// Output file names written by CSVSink.
const (
	ScoresFileName = "credit_scores_sample.csv"
	EventsFileName = "credit_events_sample.csv"
)

var (
	scoreHeader       = []string{"customer_id", "bureau_name", "credit_score", "score_date", "risk_category", "score_type"}
	eventHeader       = []string{"customer_id", "event_type", "event_date", "impact_score", "description"}
	customerHeader    = []string{"customer_id", "first_name", "last_name", "email", "phone", "date_of_birth", "address", "city", "province", "postal_code", "customer_since", "account_status", "age", "tenure_years", "customer_segment"}
	transactionHeader = []string{"transaction_id", "customer_id", "account_id", "transaction_date", "transaction_type", "amount", "merchant_category", "description", "channel"}
)

// Columns recognised by ReadCustomers.
const (
	colCustomerID = "customer_id"
	colSegment    = "customer_segment"
	colSegmentAlt = "segment"
	colAge        = "age"
	colTenure     = "tenure_years"
)

// ReadCustomers loads engine profiles from a customer CSV with a header row.
// Only customer_id is required; absent columns or empty cells take the
// profile defaults. A missing file yields a *model.MissingInputError.
func ReadCustomers(ctx context.Context, path string) ([]model.CustomerProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &model.MissingInputError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open customers %q: %w", path, err)
	}
	defer f.Close()

	return DecodeCustomers(ctx, f)
}

// DecodeCustomers parses customer CSV content. See ReadCustomers.
func DecodeCustomers(ctx context.Context, r io.Reader) ([]model.CustomerProfile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty customer file", ErrInvalidInput)
		}
		return nil, fmt.Errorf("read customer header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	idCol, ok := cols[colCustomerID]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s column", ErrInvalidInput, colCustomerID)
	}
	segCol, hasSeg := cols[colSegment]
	if !hasSeg {
		segCol, hasSeg = cols[colSegmentAlt]
	}
	ageCol, hasAge := cols[colAge]
	tenureCol, hasTenure := cols[colTenure]

	var profiles []model.CustomerProfile
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read customer line %d: %w", line, err)
		}

		id := strings.TrimSpace(cell(rec, idCol, true))
		if id == "" {
			return nil, fmt.Errorf("%w: line %d has no %s", ErrInvalidInput, line, colCustomerID)
		}

		in := model.ProfileInput{CustomerID: id}
		if v := cell(rec, segCol, hasSeg); v != "" {
			in.Segment = &v
		}
		if in.Age, err = optionalInt(cell(rec, ageCol, hasAge)); err != nil {
			return nil, fmt.Errorf("%w: line %d %s: %v", ErrInvalidInput, line, colAge, err)
		}
		if in.TenureYears, err = optionalInt(cell(rec, tenureCol, hasTenure)); err != nil {
			return nil, fmt.Errorf("%w: line %d %s: %v", ErrInvalidInput, line, colTenure, err)
		}

		profiles = append(profiles, in.Resolve())
	}

	return profiles, nil
}

func cell(rec []string, i int, present bool) string {
	if !present || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// optionalInt accepts "42" and "42.0", the latter being how pandas writes
// integer columns that contained NaN. Values must be whole and within
// [0, math.MaxInt32].
func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > math.MaxInt32 {
			return nil, fmt.Errorf("%d out of range", n)
		}
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return nil, fmt.Errorf("%q is not finite", s)
	case f != math.Trunc(f):
		return nil, fmt.Errorf("%q is not a whole number", s)
	case f < 0 || f > math.MaxInt32:
		return nil, fmt.Errorf("%q out of range", s)
	}
	n := int(f)
	return &n, nil
}

// CSVSink writes scores and events as two CSV files in one directory.
type CSVSink struct {
	dir string
}

// NewCSVSink creates the output directory if needed.
func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %q: %w", dir, err)
	}
	return &CSVSink{dir: dir}, nil
}

// ScoresPath returns the path of the scores file.
func (s *CSVSink) ScoresPath() string { return filepath.Join(s.dir, ScoresFileName) }

// EventsPath returns the path of the events file.
func (s *CSVSink) EventsPath() string { return filepath.Join(s.dir, EventsFileName) }

// WriteScores replaces the scores file.
func (s *CSVSink) WriteScores(ctx context.Context, _ string, scores []model.ScoreRecord) error {
	return writeCSV(ctx, s.ScoresPath(), scoreHeader, len(scores), func(i int) []string {
		r := scores[i]
		return []string{
			r.CustomerID,
			string(r.Bureau),
			strconv.Itoa(r.Score),
			r.AsOfDate.Format(time.DateOnly),
			string(r.RiskCategory),
			string(r.Kind),
		}
	})
}

// WriteEvents replaces the events file.
func (s *CSVSink) WriteEvents(ctx context.Context, _ string, events []model.CreditEvent) error {
	return writeCSV(ctx, s.EventsPath(), eventHeader, len(events), func(i int) []string {
		e := events[i]
		return []string{
			e.CustomerID,
			string(e.EventType),
			e.EventDate.Format(time.DateOnly),
			strconv.Itoa(e.ImpactScore),
			e.Description,
		}
	})
}

// Close is a no-op; every write closes its own file.
func (s *CSVSink) Close() error { return nil }

// WriteCustomers writes fixture customers in the format ReadCustomers accepts.
func WriteCustomers(ctx context.Context, path string, customers []model.Customer) error {
	return writeCSV(ctx, path, customerHeader, len(customers), func(i int) []string {
		c := customers[i]
		return []string{
			c.CustomerID,
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.DateOfBirth.Format(time.DateOnly),
			c.Address,
			c.City,
			c.Province,
			c.PostalCode,
			c.CustomerSince.Format(time.DateOnly),
			c.AccountStatus,
			strconv.Itoa(c.Age),
			strconv.Itoa(c.TenureYears),
			c.Segment.Label(),
		}
	})
}

// WriteTransactions writes fixture transactions.
func WriteTransactions(ctx context.Context, path string, txns []model.Transaction) error {
	return writeCSV(ctx, path, transactionHeader, len(txns), func(i int) []string {
		t := txns[i]
		return []string{
			t.TransactionID,
			t.CustomerID,
			t.AccountID,
			t.TransactionDate.Format(time.DateTime),
			t.TransactionType,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.MerchantCategory,
			t.Description,
			t.Channel,
		}
	})
}

func writeCSV(ctx context.Context, path string, header []string, n int, row func(int) []string) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %q: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %q: %w", path, err)
	}
	for i := range n {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("write row %d to %q: %w", i, path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %q: %w", path, err)
	}
	return nil
}
