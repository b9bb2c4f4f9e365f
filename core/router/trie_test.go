package router

import "testing"

func add(t *testing.T, tr *trie, path string) *Route {
	t.Helper()
	rt := &Route{Path: path}
	if err := tr.insert(path, rt); err != nil {
		t.Fatalf("insert(%q): %v", path, err)
	}
	return rt
}

func TestTrieStatic(t *testing.T) {
	tr := newTrie()
	add(t, tr, "/")
	add(t, tr, "/hello")
	add(t, tr, "/hello/world")

	tests := []struct {
		path        string
		shouldMatch bool
	}{
		{"/", true},
		{"/hello", true},
		{"/hello/", true},
		{"/hello//world", true},
		{"/notfound", false},
		{"/hello/world/deep", false},
	}

	for _, tt := range tests {
		rt, _ := tr.lookup(tt.path)
		if (rt != nil) != tt.shouldMatch {
			t.Errorf("path %s: match = %v, want %v", tt.path, rt != nil, tt.shouldMatch)
		}
	}
}

func TestTrieRootMatchesOnlyEmptyPath(t *testing.T) {
	tr := newTrie()
	add(t, tr, "/")

	if rt, _ := tr.lookup("/anything"); rt != nil {
		t.Errorf("root route must not match non-empty paths")
	}
	if rt, _ := tr.lookup("/"); rt == nil {
		t.Errorf("root route must match the root path")
	}
}

func TestTrieStaticWinsOverPlaceholder(t *testing.T) {
	tr := newTrie()
	exact := add(t, tr, "/user/admin")
	param := add(t, tr, "/user/{id}")

	rt, params := tr.lookup("/user/admin")
	if rt != exact {
		t.Fatalf("exact route should win over the placeholder")
	}
	if len(params) != 0 {
		t.Errorf("exact match should capture nothing, got %v", params)
	}

	rt, params = tr.lookup("/user/123")
	if rt != param {
		t.Fatalf("placeholder route should match")
	}
	if params["id"] != "123" {
		t.Errorf("params = %v, want id=123", params)
	}
}

func TestTriePlaceholderNeverSpansSlash(t *testing.T) {
	tr := newTrie()
	add(t, tr, "/files/{name}")

	if rt, _ := tr.lookup("/files/a/b"); rt != nil {
		t.Errorf("a placeholder must not span a '/'")
	}
}

func TestTrieWildcard(t *testing.T) {
	tr := newTrie()
	rt := add(t, tr, "/assets/*/raw")

	got, params := tr.lookup("/assets/logo.png/raw")
	if got != rt {
		t.Fatalf("wildcard route should match")
	}
	if len(params) != 0 {
		t.Errorf("the wildcard captures nothing, got %v", params)
	}

	if got, _ := tr.lookup("/assets/a/b/raw"); got != nil {
		t.Errorf("the wildcard must not span a '/'")
	}
}

func TestTrieBacktracksToSiblingBranch(t *testing.T) {
	tr := newTrie()
	add(t, tr, "/a/static/x")
	param := add(t, tr, "/a/{p}/y")

	rt, params := tr.lookup("/a/static/y")
	if rt != param {
		t.Fatalf("lookup should fall back to the placeholder branch")
	}
	if params["p"] != "static" {
		t.Errorf("params = %v, want p=static", params)
	}
}

func TestTrieConflicts(t *testing.T) {
	tests := []struct {
		name  string
		first string
		then  string
	}{
		{"duplicate static", "/posts", "/posts"},
		{"duplicate placeholder", "/posts/{id}", "/posts/{id}"},
		{"placeholder name mismatch", "/posts/{id}", "/posts/{slug}"},
		{"trailing slash duplicate", "/posts", "/posts/"},
	}

	for _, tt := range tests {
		tr := newTrie()
		if err := tr.insert(tt.first, &Route{Path: tt.first}); err != nil {
			t.Fatalf("%s: first insert failed: %v", tt.name, err)
		}
		if err := tr.insert(tt.then, &Route{Path: tt.then}); err == nil {
			t.Errorf("%s: second insert should have failed", tt.name)
		}
	}
}

func TestTrieMalformedPlaceholder(t *testing.T) {
	tr := newTrie()
	for _, path := range []string{"/x/{", "/x/}", "/x/{}", "/x/{id"} {
		if err := tr.insert(path, &Route{Path: path}); err == nil {
			t.Errorf("insert(%q) should have failed", path)
		}
	}
}

func BenchmarkTrieStatic(b *testing.B) {
	tr := newTrie()
	tr.insert("/hello/world", &Route{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.lookup("/hello/world")
	}
}

func BenchmarkTriePlaceholder(b *testing.B) {
	tr := newTrie()
	tr.insert("/user/{id}", &Route{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.lookup("/user/123")
	}
}
