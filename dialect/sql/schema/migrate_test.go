package schema

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ariga.io/atlas/sql/migrate"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/compiler/gen"
	"github.com/syssam/indexschema/compiler/load"
)

const testSchema = `
type User {
  id: ID!
  name: String!
  role: Role!
  tags: [String!]!
  posts: [Post!]! @derivedFrom(field: "author")
}

type Post {
  id: ID!
  author: User!
  score: BigInt
}

enum Role {
  ADMIN
  MEMBER
}
`

var wantStatements = []string{
	`CREATE TYPE "Role" AS ENUM ('ADMIN', 'MEMBER')`,
	`CREATE TABLE IF NOT EXISTS "User" ("id" text NOT NULL, "name" text NOT NULL, "role" "Role" NOT NULL, "tags" text[] NOT NULL, PRIMARY KEY ("id"))`,
	`CREATE TABLE IF NOT EXISTS "Post" ("id" text NOT NULL, "author_id" text NOT NULL, "score" numeric NULL, PRIMARY KEY ("id"), CONSTRAINT "Post_author_id_fkey" FOREIGN KEY ("author_id") REFERENCES "User" ("id"))`,
	`CREATE INDEX "Post_author_id_idx" ON "Post" ("author_id")`,
}

func graph(t *testing.T, input string) *gen.Graph {
	t.Helper()
	doc, err := load.ParseSource(t.Name(), input)
	require.NoError(t, err)
	s, err := load.Build(doc)
	require.NoError(t, err)
	g, err := gen.NewGraph(s)
	require.NoError(t, err)
	return g
}

func fromGraph(t *testing.T, input string) *Schema {
	t.Helper()
	s, err := FromGraph(graph(t, input))
	require.NoError(t, err)
	return s
}

func escape(query string) string {
	return regexp.QuoteMeta(query) + "$"
}

func TestFromGraph(t *testing.T) {
	s := fromGraph(t, testSchema)
	require.Len(t, s.Enums, 1)
	require.Len(t, s.Tables, 2)

	user, ok := s.Table("User")
	require.True(t, ok)
	require.Len(t, user.Columns, 4)
	require.Len(t, user.PrimaryKey, 1)
	require.Equal(t, IDColumn, user.PrimaryKey[0].Name)
	_, ok = user.Column("posts")
	require.False(t, ok, "derived fields are not stored")

	tags, ok := user.Column("tags")
	require.True(t, ok)
	require.Equal(t, "text", tags.Type)
	require.Equal(t, 1, tags.Dims)

	post, ok := s.Table("Post")
	require.True(t, ok)
	require.Len(t, post.ForeignKeys, 1)
	require.Equal(t, "User", post.ForeignKeys[0].RefTable.Name)
	require.Equal(t, user.PrimaryKey, post.ForeignKeys[0].RefColumns)
	score, ok := post.Column("score")
	require.True(t, ok)
	require.True(t, score.Nullable)

	require.False(t, ValidateSchema(s).HasErrors())
}

func TestFromGraphImplicitID(t *testing.T) {
	s := fromGraph(t, "type Counter { value: Int! grid: [[Int!]!] }")
	counter, ok := s.Table("Counter")
	require.True(t, ok)
	require.Equal(t, IDColumn, counter.Columns[0].Name)
	stmts, err := s.Statements(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		`CREATE TABLE IF NOT EXISTS "Counter" ("id" text NOT NULL, "value" integer NOT NULL, "grid" integer[][] NULL, PRIMARY KEY ("id"))`,
	}, stmts)
}

func TestFromGraphNonStoredID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "Derived",
			input: `
type User { id: [Post!]! @derivedFrom(field: "author") name: String! }
type Post { id: ID! author: User! }`,
			want: []string{
				`CREATE TABLE IF NOT EXISTS "User" ("id" text NOT NULL, "name" text NOT NULL, PRIMARY KEY ("id"))`,
				`CONSTRAINT "Post_author_id_fkey" FOREIGN KEY ("author_id") REFERENCES "User" ("id")`,
			},
		},
		{
			name: "EntityReference",
			input: `
type Post { id: ID! }
type Comment { id: Post! body: String! }
type Like { comment: Comment! }`,
			want: []string{
				`CREATE TABLE IF NOT EXISTS "Comment" ("id" text NOT NULL, "id_id" text NOT NULL, "body" text NOT NULL, PRIMARY KEY ("id"), CONSTRAINT "Comment_id_id_fkey" FOREIGN KEY ("id_id") REFERENCES "Post" ("id"))`,
				`CONSTRAINT "Like_comment_id_fkey" FOREIGN KEY ("comment_id") REFERENCES "Comment" ("id")`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fromGraph(t, tt.input)
			require.False(t, ValidateSchema(s).HasErrors())
			for _, tbl := range s.Tables {
				require.Len(t, tbl.PrimaryKey, 1)
				require.Equal(t, IDColumn, tbl.PrimaryKey[0].Name)
				for _, fk := range tbl.ForeignKeys {
					require.Len(t, fk.RefColumns, 1)
					require.NotNil(t, fk.RefColumns[0])
				}
			}
			ddl, err := s.DDL(context.Background())
			require.NoError(t, err)
			for _, w := range tt.want {
				require.Contains(t, ddl, w)
			}
		})
	}
}

func TestFromGraphIDType(t *testing.T) {
	for _, input := range []string{
		"type Counter { id: Int! }",
		"type Counter { id: [String!]! }",
		"enum Kind { A B } type Counter { id: Kind! }",
	} {
		_, err := FromGraph(graph(t, input))
		require.Error(t, err, input)
		require.True(t, indexschema.HasCode(err, indexschema.CodeProjectionInvariant), input)
		require.Contains(t, err.Error(), "cannot be the primary key")
	}

	s := fromGraph(t, "type Counter { id: String }")
	counter, _ := s.Table("Counter")
	require.Len(t, counter.Columns, 1)
	require.False(t, counter.PrimaryKey[0].Nullable, "primary key columns are not null")
}

func TestStatements(t *testing.T) {
	ctx := context.Background()
	s := fromGraph(t, testSchema)
	stmts, err := s.Statements(ctx)
	require.NoError(t, err)
	require.Equal(t, wantStatements, stmts)

	ddl, err := s.DDL(ctx)
	require.NoError(t, err)
	require.Contains(t, ddl, wantStatements[0]+";\n")

	ddl, err = (&Schema{}).DDL(ctx)
	require.NoError(t, err)
	require.Empty(t, ddl)
}

func TestStatementsCycle(t *testing.T) {
	s := fromGraph(t, `
type A { id: ID! b: B }
type B { id: ID! a: A }`)
	stmts, err := s.Statements(context.Background())
	require.NoError(t, err)
	require.Contains(t, stmts, `ALTER TABLE "A" ADD CONSTRAINT "A_b_id_fkey" FOREIGN KEY ("b_id") REFERENCES "B" ("id")`)
	require.Contains(t, stmts, `ALTER TABLE "B" ADD CONSTRAINT "B_a_id_fkey" FOREIGN KEY ("a_id") REFERENCES "A" ("id")`)
	require.Contains(t, stmts, `CREATE TABLE IF NOT EXISTS "A" ("id" text NOT NULL, "b_id" text NULL, PRIMARY KEY ("id"))`)
}

func TestAtlas(t *testing.T) {
	ns, err := fromGraph(t, testSchema).Atlas()
	require.NoError(t, err)
	require.Equal(t, DefaultSchema, ns.Name)
	require.Len(t, ns.Objects, 1)
	require.Len(t, ns.Tables, 2)

	user, ok := ns.Table("User")
	require.True(t, ok)
	require.Len(t, user.Deps, 1, "tables depend on their enum types")
	role, ok := user.Column("role")
	require.True(t, ok)
	require.Equal(t, ns.Objects[0], role.Type.Type)

	post, ok := ns.Table("Post")
	require.True(t, ok)
	require.Len(t, post.ForeignKeys, 1)
	require.Equal(t, user, post.ForeignKeys[0].RefTable)

	bad := &Schema{Tables: []*Table{table("T", &Column{Name: "c", Type: "Ghost", Enum: true})}}
	_, err = bad.Atlas()
	require.ErrorContains(t, err, `enum type "Ghost" is not defined`)
}

func TestDiff(t *testing.T) {
	ctx := context.Background()
	current := fromGraph(t, testSchema)
	stmts, err := Diff(ctx, current, current)
	require.NoError(t, err)
	require.Empty(t, stmts)

	desired := fromGraph(t, `
type User { id: ID! name: String! role: Role! tags: [String!]! email: String }
type Post { id: ID! author: User! score: BigInt }
enum Role { ADMIN MEMBER }`)
	stmts, err = Diff(ctx, current, desired)
	require.NoError(t, err)
	require.Contains(t, stmts, `ALTER TABLE "User" ADD COLUMN "email" text NULL`)
}

func TestWriteMigration(t *testing.T) {
	ctx := context.Background()
	dir := &migrate.MemDir{}
	s := fromGraph(t, testSchema)
	require.NoError(t, s.WriteMigration(ctx, dir, "20240101000000"))

	files, err := dir.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "20240101000000_indexschema.sql", files[0].Name())
	stmts, err := files[0].Stmts()
	require.NoError(t, err)
	require.Len(t, stmts, len(wantStatements))
	require.Contains(t, string(files[0].Bytes()), wantStatements[0]+";")

	sum, err := dir.Checksum()
	require.NoError(t, err)
	require.NoError(t, migrate.Validate(dir))
	require.Len(t, sum, 1)

	require.Error(t, s.WriteMigration(ctx, dir, ""))
}

func TestMigrate(t *testing.T) {
	s := fromGraph(t, testSchema)

	t.Run("commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectBegin()
		for _, stmt := range wantStatements {
			mock.ExpectExec(escape(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()
		n, err := Migrate(context.Background(), db, s)
		require.NoError(t, err)
		require.Equal(t, len(wantStatements), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectExec(escape(wantStatements[0])).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(escape(wantStatements[1])).WillReturnError(errors.New("relation exists"))
		mock.ExpectRollback()
		_, err = Migrate(context.Background(), db, s)
		require.Error(t, err)
		require.Contains(t, err.Error(), "relation exists")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
		_, err = Migrate(context.Background(), db, s)
		require.ErrorContains(t, err, "begin transaction")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		bad := &Schema{Tables: []*Table{NewTable("A"), NewTable("A")}}
		_, err = Migrate(context.Background(), db, bad)
		require.Error(t, err)
		require.True(t, indexschema.IsProjectionError(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
