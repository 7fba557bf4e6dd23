package exhibitors

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/animeaux/animeaux/internal/platform/db"
	"github.com/animeaux/animeaux/internal/searchparams"
)

// Repository reads the exhibitor list.
type Repository interface {
	List(ctx context.Context, params SearchParams, limit, offset int) ([]Exhibitor, int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const listColumns = `e.id, e.name, e.activity_fields::text[], e.activity_targets::text[], e.document_status,
	e.is_paid, e.is_visible, COALESCE(e.logo, ''), e.updated_at`

func (r *repository) List(ctx context.Context, params SearchParams, limit, offset int) ([]Exhibitor, int, error) {
	q := buildListQuery(params)
	where := q.where()
	countArgs := len(q.args)

	listSQL := `SELECT ` + listColumns + ` FROM exhibitors e WHERE ` + where + ` ORDER BY ` + orderBy(params.Sort())
	if limit > 0 {
		listSQL += ` LIMIT ` + q.arg(limit) + ` OFFSET ` + q.arg(max(offset, 0))
	}

	var (
		total int
		items []Exhibitor
	)
	err := db.ReadSnapshot(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM exhibitors e WHERE `+where, q.args[:countArgs]...).Scan(&total); err != nil {
			return fmt.Errorf("exhibitors: count: %w", err)
		}
		rows, err := tx.Query(ctx, listSQL, q.args...)
		if err != nil {
			return fmt.Errorf("exhibitors: list: %w", err)
		}
		items, err = pgx.CollectRows(rows, scanExhibitor)
		if err != nil {
			return fmt.Errorf("exhibitors: scan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func scanExhibitor(row pgx.CollectableRow) (Exhibitor, error) {
	var e Exhibitor
	var activities, targets []string
	var documents string
	err := row.Scan(&e.ID, &e.Name, &activities, &targets, &documents, &e.IsPaid, &e.IsVisible, &e.LogoURL, &e.UpdatedAt)
	e.Activities = convert[Activity](activities)
	e.Targets = convert[Target](targets)
	e.DocumentStatus = DocumentStatus(documents)
	return e, err
}

func convert[T ~string](in []string) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}

type listQuery struct {
	conditions []string
	args       []any
}

func (q *listQuery) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *listQuery) add(cond string) {
	q.conditions = append(q.conditions, cond)
}

func (q *listQuery) where() string {
	if len(q.conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(q.conditions, " AND ")
}

func buildListQuery(params SearchParams) *listQuery {
	q := &listQuery{}
	if v, ok := params.Name(); ok {
		q.add("e.name ILIKE " + q.arg("%"+escapeLike(v)+"%"))
	}
	if v := params.Activities(); len(v) > 0 {
		q.add("e.activity_fields::text[] && " + q.arg(searchparams.Strings(v)))
	}
	if v := params.Targets(); len(v) > 0 {
		q.add("e.activity_targets::text[] && " + q.arg(searchparams.Strings(v)))
	}
	if v := params.Documents(); len(v) > 0 {
		q.add("e.document_status::text = ANY(" + q.arg(searchparams.Strings(v)) + ")")
	}
	// Selecting both values of a two-valued filter is the same as selecting none.
	if v := params.Payments(); len(v) == 1 {
		q.add("e.is_paid = " + q.arg(v[0] == PaymentPaid))
	}
	if v := params.Visibilities(); len(v) == 1 {
		q.add("e.is_visible = " + q.arg(v[0] == VisibilityVisible))
	}
	r := params.UpdatedAt()
	if r.HasStart() {
		q.add("e.updated_at >= " + q.arg(r.Start.In(time.UTC)))
	}
	if r.HasEnd() {
		q.add("e.updated_at < " + q.arg(r.End.AddDays(1).In(time.UTC)))
	}
	return q
}

func orderBy(s Sort) string {
	if s == SortUpdatedAt {
		return "e.updated_at DESC, e.id ASC"
	}
	return "e.name ASC, e.id ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
