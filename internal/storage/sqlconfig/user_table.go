package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const usersTable = "users"

var userColumns = []any{"id", "name", "email", "password_hash", "is_admin", "created_at"}

var _ IUserTable = (*UsersTable)(nil)

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByEmail looks a user up by its lower-cased email.
func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("email").EQ(psql.Arg(email))))
}

func (t *UsersTable) findOne(ctx context.Context, where bob.Mod[*dialect.SelectQuery]) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTable),
		where,
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[User]())
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(usersTable, "name", "email", "password_hash", "is_admin"),
		im.Values(
			psql.Arg(create.Name),
			psql.Arg(create.Email),
			psql.Arg(create.PasswordHash),
			psql.Arg(create.IsAdmin),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// List returns every user ordered by registration time.
func (t *UsersTable) List(ctx context.Context) ([]*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTable),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[User]())
	if err != nil {
		return nil, err
	}
	result := make([]*User, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
