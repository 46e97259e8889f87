package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func table(name string, columns ...*Column) *Table {
	t := NewTable(name)
	for _, c := range columns {
		if c.Name == IDColumn {
			t.AddPrimary(c)
			continue
		}
		t.AddColumn(c)
	}
	return t
}

func TestValidateTable(t *testing.T) {
	tbl := table("T", &Column{Name: "a", Type: "text"}, &Column{Name: "a", Type: "text"})
	tbl.AddIndex("T_b_idx", false, "b")
	r := ValidateTable(tbl)
	require.True(t, r.HasErrors())
	require.Len(t, r.Errors, 2)
	require.True(t, r.HasWarnings(), "missing primary key")
	require.Contains(t, r.String(), "duplicate column name")
}

func TestValidateSchema(t *testing.T) {
	user := table("User", &Column{Name: IDColumn, Type: "text"})
	post := table("Post",
		&Column{Name: IDColumn, Type: "text"},
		&Column{Name: "role", Type: "Role", Enum: true},
	)
	post.AddForeignKey(&ForeignKey{Symbol: "Post_user_fkey", Columns: []*Column{{Name: "missing"}}, RefTable: NewTable("Ghost")})
	r := ValidateSchema(&Schema{
		Enums:  []*EnumType{{Name: "Color"}},
		Tables: []*Table{user, post},
	})
	require.True(t, r.HasErrors())
	msgs := r.String()
	require.Contains(t, msgs, "enum type has no values")
	require.Contains(t, msgs, `non-existent enum type "Role"`)
	require.Contains(t, msgs, `foreign key "Post_user_fkey" references a non-existent column`)
	require.Contains(t, msgs, `foreign key "Post_user_fkey" references a non-existent table`)
}

func TestValidateSchemaRefColumns(t *testing.T) {
	user := table("User", &Column{Name: IDColumn, Type: "text"})
	post := table("Post",
		&Column{Name: IDColumn, Type: "text"},
		&Column{Name: "author_id", Type: "text"},
		&Column{Name: "editor_id", Type: "text"},
		&Column{Name: "owner_id", Type: "text"},
	)
	author, _ := post.Column("author_id")
	editor, _ := post.Column("editor_id")
	owner, _ := post.Column("owner_id")
	post.AddForeignKey(&ForeignKey{Symbol: "Post_author_id_fkey", Columns: []*Column{author}, RefTable: user})
	post.AddForeignKey(&ForeignKey{Symbol: "Post_editor_id_fkey", Columns: []*Column{editor}, RefTable: user, RefColumns: []*Column{nil}})
	post.AddForeignKey(&ForeignKey{Symbol: "Post_owner_id_fkey", Columns: []*Column{owner}, RefTable: user, RefColumns: []*Column{{Name: "uid"}}})
	r := ValidateSchema(&Schema{Tables: []*Table{user, post}})
	require.Len(t, r.Errors, 3)
	msgs := r.String()
	require.Contains(t, msgs, `foreign key "Post_author_id_fkey" has 1 columns but references 0`)
	require.Contains(t, msgs, `foreign key "Post_editor_id_fkey" references a non-existent column of "User"`)
	require.Contains(t, msgs, `foreign key "Post_owner_id_fkey" references a non-existent column "uid" of "User"`)

	post.ForeignKeys = post.ForeignKeys[:1]
	post.ForeignKeys[0].RefColumns = user.PrimaryKey
	require.False(t, ValidateSchema(&Schema{Tables: []*Table{user, post}}).HasErrors())
}

func TestValidateDiff(t *testing.T) {
	current := []*Table{
		table("User",
			&Column{Name: IDColumn, Type: "text"},
			&Column{Name: "name", Type: "text", Nullable: true},
			&Column{Name: "age", Type: "integer"},
		),
		table("Legacy", &Column{Name: IDColumn, Type: "text"}),
	}
	desired := []*Table{
		table("User",
			&Column{Name: IDColumn, Type: "text"},
			&Column{Name: "name", Type: "text"},
			&Column{Name: "age", Type: "numeric"},
			&Column{Name: "email", Type: "text"},
		),
	}

	r := ValidateDiff(current, desired)
	require.True(t, r.HasBreakingChanges())
	msgs := r.String()
	require.Contains(t, msgs, "Legacy: table will be dropped")
	require.Contains(t, msgs, "User.age: column type changing from integer to numeric")
	require.Contains(t, msgs, "User.name: column changing from NULL to NOT NULL")
	require.Contains(t, msgs, "User.email: new NOT NULL column without default value")

	r = ValidateDiff(current, desired, AllowDropTable(), AllowNullToNotNull())
	require.Len(t, r.Errors, 1, "type changes are always errors")
	require.True(t, r.HasWarnings())

	r = ValidateDiff(desired, desired)
	require.False(t, r.HasErrors())
	require.False(t, r.HasWarnings())
	require.Equal(t, "No issues found", r.String())
}
