package mapper

import (
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc/codes"

	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/kind"
	"dirpx.dev/tryx/scope"
)

func TestDefaults_HTTP_GRPC(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	// Spot-check a few canonical defaults from defaults.go
	check := func(k kind.Kind, wantHTTP int, wantGRPC codes.Code) {
		t.Helper()
		st := m.Status(k, scope.Empty)
		if st.HTTP != wantHTTP || st.GRPC != wantGRPC {
			t.Fatalf("Status(%q) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
				k, st.HTTP, st.GRPC, wantHTTP, wantGRPC)
		}
	}
	check(kind.ValidationError, 400, codes.InvalidArgument)
	check(kind.NotFoundError, 404, codes.NotFound)
	check(kind.TimeoutError, 504, codes.DeadlineExceeded)
	check(kind.NetworkError, 502, codes.Unavailable)
	check(kind.PanicError, 500, codes.Internal)
}

func TestFallback_UnknownKind(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A custom kind with no default anywhere lands on the global fallback.
	st := m.Status(kind.Kind("LedgerError"), scope.Empty)
	if st.HTTP != 500 || st.GRPC != codes.Internal {
		t.Fatalf("fallback mismatch: %+v", st)
	}
}

func TestPriority_OverrideOverPrefixOverDefault_HTTP(t *testing.T) {
	m, err := New(
		WithHTTPDefault(kind.NetworkError, 503),              // default
		WithHTTPPrefix(kind.NetworkError, "storage.pg", 599), // prefix
		WithHTTPOverride(kind.NetworkError, 418),             // override
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(kind.NetworkError, mustScope("storage.pg.connect"))
	if st.HTTP != 418 {
		t.Fatalf("override must win; got %d, want 418", st.HTTP)
	}
}

func TestPriority_OverrideOverPrefixOverDefault_GRPC(t *testing.T) {
	m, err := New(
		WithGRPCDefault(kind.NetworkError, int(codes.Unavailable)),
		WithGRPCPrefix(kind.NetworkError, "storage.pg", int(codes.Internal)),
		WithGRPCOverride(kind.NetworkError, int(codes.Aborted)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(kind.NetworkError, mustScope("storage.pg.connect"))
	if st.GRPC != codes.Aborted {
		t.Fatalf("override must win; got %v, want %v", st.GRPC, codes.Aborted)
	}
}

func TestPrefix_LPM_And_SegmentBoundary(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(kind.NetworkError, "storage.pg", 503),
		WithHTTPPrefix(kind.NetworkError, "storage.pg.connect", 599),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// LPM should pick the longer "storage.pg.connect"
	st := m.Status(kind.NetworkError, mustScope("storage.pg.connect.tls"))
	if st.HTTP != 599 {
		t.Fatalf("LPM failed: got %d, want 599", st.HTTP)
	}
	// make sure we don't cross segment boundaries ("auth.j" must not match "auth.jwt")
	m2, _ := New(WithHTTPPrefix(kind.NetworkError, "auth.jwt", 499))
	st2 := m2.Status(kind.NetworkError, mustScope("auth.j"))
	if st2.HTTP == 499 {
		t.Fatalf("unexpected match across segment boundary")
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(kind.PermissionError, "auth.*.verify", 502),
		WithHTTPPrefix(kind.PermissionError, "auth.jwt.verify", 401), // exact should win at same depth
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a := m.Status(kind.PermissionError, mustScope("auth.jwt.verify"))
	if a.HTTP != 401 {
		t.Fatalf("exact must beat wildcard; got %d", a.HTTP)
	}
	b := m.Status(kind.PermissionError, mustScope("auth.saml.verify.token"))
	if b.HTTP != 502 {
		t.Fatalf("wildcard match failed; got %d, want 502", b.HTTP)
	}
	// wildcard matches exactly one segment, not zero
	c := m.Status(kind.PermissionError, mustScope("auth.verify"))
	if c.HTTP == 502 {
		t.Fatalf("wildcard must not match zero segments")
	}
}

func TestNormalization_In_Options(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(kind.NetworkError, "  STORAGE/PG.CONNECT-TIMEOUT  ", 599),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(kind.NetworkError, mustScope("storage.pg.connect_timeout"))
	if st.HTTP != 599 {
		t.Fatalf("normalized prefix should match; got %d", st.HTTP)
	}
}

func TestInvalidPrefix_FailsBuild(t *testing.T) {
	if _, err := New(WithHTTPPrefix(kind.NetworkError, "*.*", 500)); err == nil {
		t.Fatalf("wildcard-only prefix must fail the build")
	}
	if _, err := New(WithHTTPPrefix(kind.NetworkError, "a..b", 500)); err == nil {
		t.Fatalf("empty segment must fail the build")
	}
}

func TestEmptyScope_UsesDefaultAndOverride(t *testing.T) {
	m, err := New(
		WithHTTPDefault(kind.AbortError, 408),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(kind.AbortError, scope.Empty)
	if st.HTTP != 408 {
		t.Fatalf("empty scope should use default; got %d, want 408", st.HTTP)
	}

	m2, err := New(
		WithHTTPOverride(kind.PermissionError, 451),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st2 := m2.Status(kind.PermissionError, scope.Empty)
	if st2.HTTP != 451 {
		t.Fatalf("override must win; got %d, want 451", st2.HTTP)
	}
}

func TestExplain_Sources_And_Pattern(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(kind.NetworkError, "storage.pg", 503),
		WithGRPCPrefix(kind.NetworkError, "storage.pg", int(codes.Unavailable)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	exp := m.Explain(kind.NetworkError, mustScope("storage.pg.connect"))
	if !strings.Contains(exp, `source=prefix`) {
		t.Fatalf("Explain must include source=prefix:\n%s", exp)
	}
	if !strings.Contains(exp, `pattern="storage.pg"`) {
		t.Fatalf("Explain must include matched pattern:\n%s", exp)
	}
	if !strings.Contains(exp, `grpc:`) || !strings.Contains(exp, `http:`) {
		t.Fatalf("Explain must render both transports:\n%s", exp)
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(kind.NetworkError, "storage.pg", 503),
		WithHTTPOverride(kind.AbortError, 408),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				_ = m.Status(kind.NetworkError, mustScope("storage.pg.connect"))
				_ = m.Status(kind.AbortError, scope.Empty)
				_ = m.Status(kind.ValidationError, mustScope("codec.json.decode"))
			}
		}()
	}
	wg.Wait()
}

func mustScope(s string) scope.Scope {
	sc, err := scope.Parse(s)
	if err != nil {
		panic(err)
	}
	return sc
}

func BenchmarkMapperStatus_Default(t *testing.B) {
	m, _ := New()
	s := mustScope("codec.json.decode")
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(kind.ValidationError, s)
	}
}

func BenchmarkMapperStatus_PrefixHit(t *testing.B) {
	m, _ := New(
		WithHTTPPrefix(kind.NetworkError, "storage.pg", 503),
		WithGRPCPrefix(kind.NetworkError, "storage.pg", int(codes.Unavailable)),
	)
	s := mustScope("storage.pg.connect")
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(kind.NetworkError, s)
	}
}

func BenchmarkMapperStatus_Override(t *testing.B) {
	m, _ := New(
		WithHTTPOverride(kind.NetworkError, 418),
		WithGRPCOverride(kind.NetworkError, int(codes.Aborted)),
	)
	s := mustScope("storage.pg.connect")
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(kind.NetworkError, s)
	}
}

// Ensure mapper implements apis.Mapper
func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
