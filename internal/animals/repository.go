package animals

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/animeaux/animeaux/internal/platform/db"
	"github.com/animeaux/animeaux/internal/searchparams"
)

// Repository reads the animal list.
type Repository interface {
	List(ctx context.Context, params SearchParams, limit, offset int) ([]Animal, int, error)
}

type repository struct {
	db    *pgxpool.Pool
	clock func() time.Time
}

// NewRepository returns a Postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db, clock: time.Now}
}

const listColumns = `a.id, a.name, a.alias, a.species, a.sex, a.status, a.birthdate, a.pick_up_date,
	a.manager_id, u.display_name, COALESCE(a.avatar, ''), a.updated_at`

func (r *repository) List(ctx context.Context, params SearchParams, limit, offset int) ([]Animal, int, error) {
	q := buildListQuery(params, civil.DateOf(r.clock()))

	listSQL := `SELECT ` + listColumns + ` FROM animals a LEFT JOIN users u ON u.id = a.manager_id WHERE ` +
		q.where() + ` ORDER BY ` + orderBy(params.Sort())
	countArgs := len(q.args)
	if limit > 0 {
		listSQL += ` LIMIT ` + q.arg(limit) + ` OFFSET ` + q.arg(max(offset, 0))
	}

	var (
		total   int
		animals []Animal
	)
	err := db.ReadSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		countSQL := `SELECT COUNT(*) FROM animals a WHERE ` + q.where()
		if err := tx.QueryRow(ctx, countSQL, q.args[:countArgs]...).Scan(&total); err != nil {
			return fmt.Errorf("animals: count: %w", err)
		}
		rows, err := tx.Query(ctx, listSQL, q.args...)
		if err != nil {
			return fmt.Errorf("animals: list: %w", err)
		}
		animals, err = pgx.CollectRows(rows, scanAnimal)
		if err != nil {
			return fmt.Errorf("animals: scan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

func scanAnimal(row pgx.CollectableRow) (Animal, error) {
	var a Animal
	var species, sex, status string
	err := row.Scan(&a.ID, &a.Name, &a.Alias, &species, &sex, &status, &a.Birthdate, &a.PickUpDate,
		&a.ManagerID, &a.Manager, &a.AvatarURL, &a.UpdatedAt)
	a.Species, a.Sex, a.Status = Species(species), Sex(sex), Status(status)
	return a, err
}

// listQuery accumulates SQL conditions and their positional arguments.
type listQuery struct {
	conditions []string
	args       []any
}

func (q *listQuery) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *listQuery) where() string {
	if len(q.conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(q.conditions, " AND ")
}

func (q *listQuery) add(cond string) {
	q.conditions = append(q.conditions, cond)
}

// buildListQuery translates the search params into SQL predicates.
func buildListQuery(params SearchParams, today civil.Date) *listQuery {
	q := &listQuery{}
	if v := params.Statuses(); len(v) > 0 {
		q.add("a.status::text = ANY(" + q.arg(searchparams.Strings(v)) + ")")
	}
	if v := params.Species(); len(v) > 0 {
		q.add("a.species::text = ANY(" + q.arg(searchparams.Strings(v)) + ")")
	}
	if v := params.Sexes(); len(v) > 0 {
		q.add("a.sex::text = ANY(" + q.arg(searchparams.Strings(v)) + ")")
	}
	if v := params.ManagersID(); len(v) > 0 {
		q.add("a.manager_id = ANY(" + q.arg(searchparams.IDStrings(v)) + "::uuid[])")
	}
	if v, ok := params.NameOrAlias(); ok {
		p := q.arg("%" + escapeLike(v) + "%")
		q.add("(a.name ILIKE " + p + " OR a.alias ILIKE " + p + ")")
	}
	addRange(q, "a.birthdate", params.Birthdate())
	addRange(q, "a.pick_up_date", params.PickUpDate())
	if ages := params.Ages(); len(ages) > 0 {
		q.add(agePredicate(q, ages, params.Species(), today))
	}
	return q
}

func addRange(q *listQuery, column string, r searchparams.DateRange) {
	if r.HasStart() {
		q.add(column + " >= " + q.arg(r.Start.In(time.UTC)))
	}
	if r.HasEnd() {
		q.add(column + " <= " + q.arg(r.End.In(time.UTC)))
	}
}

// agePredicate matches any of ages. Age boundaries differ per species, so each
// species gets its own birthdate window.
func agePredicate(q *listQuery, ages []Age, species []Species, today civil.Date) string {
	if len(species) == 0 {
		species = AllSpecies
	}
	var parts []string
	for _, s := range species {
		for _, age := range ages {
			after, onOrBefore := BirthdateBounds(s, age, today)
			cond := []string{"a.species::text = " + q.arg(string(s))}
			if after != (civil.Date{}) {
				cond = append(cond, "a.birthdate > "+q.arg(after.In(time.UTC)))
			}
			if onOrBefore != (civil.Date{}) {
				cond = append(cond, "a.birthdate <= "+q.arg(onOrBefore.In(time.UTC)))
			}
			parts = append(parts, "("+strings.Join(cond, " AND ")+")")
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func orderBy(s Sort) string {
	switch s {
	case SortBirthdate:
		return "a.birthdate DESC, a.name ASC, a.id ASC"
	case SortPickUp:
		return "a.pick_up_date DESC, a.name ASC, a.id ASC"
	default:
		return "a.name ASC, a.id ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
