package convert

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-mapper/internal/diagnostic"
	"field-mapper/internal/introspect"
	"field-mapper/internal/resolve"
	"field-mapper/options"
)

type Audit struct {
	CreatedAt time.Time
	UpdatedBy string
}

type User struct {
	*Audit
	ID       int
	Name     string
	Nickname *string
	Score    *int
	Level    int
	Age      string
	Timeout  time.Duration
	Tags     []string
}

type Client struct {
	*Audit
	ID       int
	Name     string
	Nickname *string
	Score    int
	Level    *int
	Age      int
	Timeout  int64
	Tags     []string
	Region   string
}

var in = introspect.New()

func build(t *testing.T, flags options.Flag) *Converter {
	t.Helper()

	plan := resolve.Resolve(
		in.Describe(reflect.TypeFor[User]()),
		in.Describe(reflect.TypeFor[Client]()),
		flags, nil,
	)

	c, err := Build(plan)
	require.NoError(t, err)

	return c
}

func ptr[T any](v T) *T {
	return &v
}

func TestConverter_NewCopiesIdenticalFields(t *testing.T) {
	c := build(t, options.FlagNone)

	assert.Equal(t, []string{"CreatedAt", "ID", "Name", "Nickname", "Tags", "UpdatedBy"}, c.Fields())

	src := User{
		Audit:    &Audit{UpdatedBy: "root"},
		ID:       7,
		Name:     "Ada",
		Nickname: ptr("ada"),
		Score:    ptr(10),
		Age:      "36",
		Tags:     []string{"a"},
	}

	out, err := c.New(reflect.ValueOf(src))
	require.NoError(t, err)

	got := out.Interface().(*Client)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Same(t, src.Nickname, got.Nickname)
	require.NotNil(t, got.Audit)
	assert.NotSame(t, src.Audit, got.Audit, "promoted fields are copied one by one")
	assert.Equal(t, "root", got.UpdatedBy)
	assert.Zero(t, got.Score)
	assert.Zero(t, got.Age)
	assert.Zero(t, got.Region)
}

func TestConverter_IntoKeepsUnmappedFields(t *testing.T) {
	c := build(t, options.CopyInto)

	dst := Client{ID: 1, Score: 99, Region: "eu", Nickname: ptr("old")}
	require.NoError(t, c.Into(reflect.ValueOf(&User{ID: 2, Name: "Bob"}), reflect.ValueOf(&dst)))

	assert.Equal(t, 2, dst.ID)
	assert.Equal(t, "Bob", dst.Name)
	assert.Nil(t, dst.Nickname, "nil is copied when null values are copied")
	assert.Equal(t, 99, dst.Score)
	assert.Equal(t, "eu", dst.Region)
	assert.Nil(t, dst.Audit, "nil embedded source pointer skips its fields")
}

func TestConverter_SkipNull(t *testing.T) {
	c := build(t, options.CopyInto|options.SkipNull)

	dst := Client{Nickname: ptr("keep"), Tags: []string{"keep"}}
	require.NoError(t, c.Into(reflect.ValueOf(User{Name: "Eve"}), reflect.ValueOf(&dst)))

	assert.Equal(t, "keep", *dst.Nickname)
	assert.Equal(t, []string{"keep"}, dst.Tags)
	assert.Equal(t, "Eve", dst.Name)

	require.NoError(t, c.Into(reflect.ValueOf(User{Nickname: ptr("new")}), reflect.ValueOf(&dst)))
	assert.Equal(t, "new", *dst.Nickname)
	assert.Empty(t, dst.Name, "non-nilable values are always copied")
}

func TestConverter_NullableCoercion(t *testing.T) {
	c := build(t, options.CoerceNullable|options.CopyInto)

	dst := Client{Score: 5}
	require.NoError(t, c.Into(reflect.ValueOf(User{Level: 3}), reflect.ValueOf(&dst)))
	assert.Equal(t, 5, dst.Score, "nil source cannot unwrap into a value")
	require.NotNil(t, dst.Level)
	assert.Equal(t, 3, *dst.Level)

	src := User{Score: ptr(42)}
	require.NoError(t, c.Into(reflect.ValueOf(src), reflect.ValueOf(&dst)))
	assert.Equal(t, 42, dst.Score)

	*src.Score = 0
	assert.Equal(t, 42, dst.Score, "unwrap copies the value")
}

func TestConverter_UnsafeCopy(t *testing.T) {
	c := build(t, options.IgnoreTypeConflicts)

	src := User{Timeout: 2 * time.Second, Score: ptr(8), Level: 4}
	_, err := c.New(reflect.ValueOf(src))

	var ce *CoercionError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, ErrCoercion)
	assert.ErrorIs(t, err, ErrIncompatibleRepresentation)
	assert.Equal(t, "Age", ce.Field)
	assert.Equal(t, reflect.TypeFor[string](), ce.From)
	assert.Equal(t, reflect.TypeFor[int](), ce.To)

	diags := c.Diagnostics()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnrepresentable, diags.Errors[0].Code)
	assert.Equal(t, "Age", diags.Errors[0].FieldPath)
	assert.ErrorContains(t, diags.Error(), "string cannot be stored into int")
	assert.False(t, c.Plan().Diagnostics.HasErrors(), "the plan itself is left untouched")
}

type numbers struct {
	Count    int32
	Ratio    float32
	Timeout  time.Duration
	Score    *int
	Level    int
	Optional *int32
}

type widened struct {
	Count    int64
	Ratio    float64
	Timeout  int64
	Score    int
	Level    *int
	Optional *int64
}

func TestConverter_UnsafeReinterpretation(t *testing.T) {
	plan := resolve.Resolve(
		in.Describe(reflect.TypeFor[numbers]()),
		in.Describe(reflect.TypeFor[widened]()),
		options.IgnoreTypeConflicts, nil,
	)
	c, err := Build(plan)
	require.NoError(t, err)

	out, err := c.New(reflect.ValueOf(numbers{
		Count:    12,
		Ratio:    0.5,
		Timeout:  time.Millisecond,
		Score:    ptr(3),
		Level:    9,
		Optional: ptr[int32](6),
	}))
	require.NoError(t, err)

	got := out.Interface().(*widened)
	assert.EqualValues(t, 12, got.Count)
	assert.InDelta(t, 0.5, got.Ratio, 1e-9)
	assert.EqualValues(t, time.Millisecond, got.Timeout)
	assert.Equal(t, 3, got.Score)
	require.NotNil(t, got.Level)
	assert.Equal(t, 9, *got.Level)
	require.NotNil(t, got.Optional)
	assert.EqualValues(t, 6, *got.Optional)

	_, err = c.New(reflect.ValueOf(numbers{}))
	require.ErrorIs(t, err, ErrNilValue)
	assert.ErrorIs(t, err, ErrCoercion)
}

func TestConverter_TargetEmbeddedPointerIsAllocated(t *testing.T) {
	c := build(t, options.CopyInto)

	var dst Client
	require.NoError(t, c.Into(reflect.ValueOf(User{Audit: &Audit{UpdatedBy: "ops"}}), reflect.ValueOf(&dst)))

	require.NotNil(t, dst.Audit)
	assert.Equal(t, "ops", dst.UpdatedBy)
}

type boxed struct {
	Value any
	Raw   []byte
	Runes []rune
	Text  string
}

type unboxed struct {
	Value int
	Raw   string
	Runes string
	Text  []byte
}

func TestConverter_UnsafeDynamicValues(t *testing.T) {
	plan := resolve.Resolve(
		in.Describe(reflect.TypeFor[boxed]()),
		in.Describe(reflect.TypeFor[unboxed]()),
		options.IgnoreTypeConflicts, nil,
	)
	c, err := Build(plan)
	require.NoError(t, err)
	diags := c.Diagnostics()
	assert.False(t, diags.HasErrors())

	out, err := c.New(reflect.ValueOf(boxed{Value: 5, Raw: []byte("raw"), Runes: []rune("ünï"), Text: "text"}))
	require.NoError(t, err)

	got := out.Interface().(*unboxed)
	assert.Equal(t, 5, got.Value)
	assert.Equal(t, "raw", got.Raw)
	assert.Equal(t, "ünï", got.Runes)
	assert.Equal(t, []byte("text"), got.Text)

	out, err = c.New(reflect.ValueOf(boxed{Value: int8(5)}))
	require.NoError(t, err)
	assert.Equal(t, 5, out.Interface().(*unboxed).Value, "dynamic values are widened like declared ones")

	_, err = c.New(reflect.ValueOf(boxed{Value: "five"}))
	require.ErrorIs(t, err, ErrIncompatibleRepresentation)
	assert.ErrorContains(t, err, "dynamic type string")

	_, err = c.New(reflect.ValueOf(boxed{}))
	require.ErrorIs(t, err, ErrNilValue)
}

type sealed struct {
	Token string
}

type Session struct {
	*sealed
	Name string
}

type Login struct {
	Token string
	Name  string
}

func TestConverter_HiddenEmbeddedPointer(t *testing.T) {
	toSession, err := Build(resolve.Resolve(
		in.Describe(reflect.TypeFor[Login]()),
		in.Describe(reflect.TypeFor[Session]()),
		options.CopyInto, nil,
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Token"}, toSession.Fields())

	var fresh Session
	require.NoError(t, toSession.Into(reflect.ValueOf(Login{Token: "t1", Name: "n"}), reflect.ValueOf(&fresh)))
	assert.Equal(t, "n", fresh.Name)
	assert.Nil(t, fresh.sealed, "an unexported embedded pointer cannot be allocated")

	set := Session{sealed: &sealed{}}
	require.NoError(t, toSession.Into(reflect.ValueOf(Login{Token: "t2", Name: "m"}), reflect.ValueOf(&set)))
	assert.Equal(t, "t2", set.Token)

	toLogin, err := Build(resolve.Resolve(
		in.Describe(reflect.TypeFor[Session]()),
		in.Describe(reflect.TypeFor[Login]()),
		options.FlagNone, nil,
	))
	require.NoError(t, err)

	out, err := toLogin.New(reflect.ValueOf(Session{sealed: &sealed{Token: "t3"}, Name: "x"}))
	require.NoError(t, err)
	assert.Equal(t, Login{Token: "t3", Name: "x"}, *out.Interface().(*Login))

	out, err = toLogin.New(reflect.ValueOf(Session{Name: "y"}))
	require.NoError(t, err)
	assert.Equal(t, Login{Name: "y"}, *out.Interface().(*Login))
}

func TestConverter_RejectsMismatchedValues(t *testing.T) {
	c := build(t, options.CopyInto)

	err := c.Into(reflect.ValueOf(Client{}), reflect.ValueOf(&Client{}))
	require.ErrorIs(t, err, ErrSourceType)

	err = c.Into(reflect.ValueOf(User{}), reflect.ValueOf(Client{}))
	require.ErrorIs(t, err, ErrTargetType)

	err = c.Into(reflect.ValueOf(User{}), reflect.ValueOf((*Client)(nil)))
	require.ErrorIs(t, err, ErrTargetType)

	_, err = c.New(reflect.ValueOf((*User)(nil)))
	require.ErrorIs(t, err, ErrSourceType)
}

func TestBuild_ConstructionFailures(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, ErrConstruction)

	plan := resolve.Resolve(in.Describe(reflect.TypeFor[int]()), in.Describe(reflect.TypeFor[Client]()), options.FlagNone, nil)
	_, err = Build(plan)
	require.ErrorIs(t, err, ErrConstruction)
	assert.ErrorIs(t, err, ErrNotStruct)

	plan = resolve.Resolve(in.Describe(reflect.TypeFor[User]()), in.Describe(reflect.TypeFor[Client]()), options.FlagNone, nil)
	plan.Fields[0].Decision.Kind = resolve.DecisionKind(42)
	_, err = Build(plan)

	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, plan.Fields[0].Name, ce.Field)
	assert.ErrorIs(t, err, ErrUnknownDecision)

	plan = resolve.Resolve(in.Describe(reflect.TypeFor[User]()), in.Describe(reflect.TypeFor[Client]()), options.FlagNone, nil)
	bad := *plan.Fields[1].Target
	bad.Index = []int{99}
	plan.Fields[1].Target = &bad
	_, err = Build(plan)
	require.ErrorIs(t, err, ErrBadIndex)
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestBuild_IsDeterministic(t *testing.T) {
	a := build(t, options.CoerceNullable)
	b := build(t, options.CoerceNullable)

	assert.Equal(t, a.Fields(), b.Fields())
	assert.Equal(t, a.Plan().CountByKind(), b.Plan().CountByKind())
	assert.Equal(t, reflect.TypeFor[User](), a.Source())
	assert.Equal(t, reflect.TypeFor[Client](), a.Target())
	assert.Equal(t, options.CoerceNullable, a.Flags())
}
