package logica

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFileSimpleProgram(t *testing.T) {
	src := `
		Edge(1, 2);
		Edge(2, 3);
		Path(X, Y) :- Edge(X, Y);
		Path(X, Z) :- Edge(X, Y), Path(Y, Z);
	`

	fr, err := ParseFile([]byte(src), "main.l", nil)
	require.NoError(t, err)
	require.Len(t, fr.Rules, 4)
}

func TestParseFileExpandsDisjunctionIntoSeparateRules(t *testing.T) {
	src := `Reachable(X) :- Source(X) | Target(X);`

	fr, err := ParseFile([]byte(src), "main.l", nil)
	require.NoError(t, err)
	require.Len(t, fr.Rules, 2)

	for _, r := range fr.Rules {
		require.Equal(t, "Reachable", r.Head.Name)
	}
}

func TestParseFileExtractsDenotationAnnotations(t *testing.T) {
	src := `Top(X) limit(5) :- Edge(X, _);`

	fr, err := ParseFile([]byte(src), "main.l", nil)
	require.NoError(t, err)
	require.Len(t, fr.Rules, 2)

	names := map[string]bool{}
	for _, r := range fr.Rules {
		names[r.Head.Name] = true
	}

	require.True(t, names["Top"])
	require.True(t, names["@Limit"])
}

func TestParseFileRejectsImportsWithoutResolver(t *testing.T) {
	src := `import a.b.C; Q(X) :- C(X);`

	_, err := ParseFile([]byte(src), "main.l", nil)
	require.Error(t, err)
}

func TestParseFileResolvesImports(t *testing.T) {
	files := map[string][]byte{
		"/root/a/b.l": []byte(`C(1); C(2);`),
	}

	resolver := NewResolver([]string{"/root"}, func(path string) ([]byte, error) {
		if data, ok := files[path]; ok {
			return data, nil
		}

		return nil, fmt.Errorf("not found: %s", path)
	})

	src := `import a.b.C; Q(X) :- C(X);`

	fr, err := ParseFile([]byte(src), "main.l", resolver)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, r := range fr.Rules {
		names[r.Head.Name] = true
	}

	require.True(t, names["Q"])
	require.True(t, names["C"])
	require.True(t, names["a_b_C"])
}

func TestParseFileFunctorRule(t *testing.T) {
	src := `Doubler := Multiply(factor: 2);`

	fr, err := ParseFile([]byte(src), "main.l", nil)
	require.NoError(t, err)
	require.Len(t, fr.Rules, 1)

	head := fr.Rules[0].Head
	require.Equal(t, "@Make", head.Name)
	require.Len(t, head.Args, 3)

	newPredicate, ok := head.Args[0].(*Variable)
	require.True(t, ok)
	require.Equal(t, "Doubler", newPredicate.Name)

	applicant, ok := head.Args[1].(*Variable)
	require.True(t, ok)
	require.Equal(t, "Multiply", applicant.Name)

	arguments, ok := head.Args[2].(*Record)
	require.True(t, ok)
	require.Len(t, arguments.Fields, 1)
	require.Equal(t, "factor", arguments.Fields[0].Name)
}

func TestParseFileFunctorRuleRejectsLowercaseTarget(t *testing.T) {
	src := `doubler := Multiply(factor: 2);`

	_, err := ParseFile([]byte(src), "main.l", nil)
	require.Error(t, err)
}

func TestParseFileFunctorRuleRejectsNonCallDefinition(t *testing.T) {
	src := `Doubler := 42;`

	_, err := ParseFile([]byte(src), "main.l", nil)
	require.Error(t, err)
}

func TestParseFileFunctionRule(t *testing.T) {
	src := `Square(X) --> X * X;`

	fr, err := ParseFile([]byte(src), "main.l", nil)
	require.NoError(t, err)
	require.Len(t, fr.Rules, 2)

	names := map[string]bool{}
	for _, r := range fr.Rules {
		names[r.Head.Name] = true
	}

	require.True(t, names["Square"])
	require.True(t, names["@CompileAsUdf"])

	for _, r := range fr.Rules {
		if r.Head.Name != "Square" {
			continue
		}

		last := r.Head.Record.Fields[len(r.Head.Record.Fields)-1]
		require.Equal(t, "logica_value", last.Name)
		require.NotNil(t, last.Value)
	}
}

func TestParseFileDetectsCircularImport(t *testing.T) {
	files := map[string][]byte{
		"/root/a.l": []byte(`import b.Y; X(1) :- Y(1);`),
		"/root/b.l": []byte(`import a.X; Y(1) :- X(1);`),
	}

	resolver := NewResolver([]string{"/root"}, func(path string) ([]byte, error) {
		if data, ok := files[path]; ok {
			return data, nil
		}

		return nil, fmt.Errorf("not found: %s", path)
	})

	_, err := resolver.load([]string{"a"}, spanOf("import a.X"))
	require.Error(t, err)
}
