package config

import "testing"

func TestParseProto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Proto
		wantErr bool
	}{
		{name: "tcp", in: "tcp", want: ProtoTCP},
		{name: "ws", in: "ws", want: ProtoWS},
		{name: "udp", in: "udp", want: ProtoUDP},
		{name: "unknown", in: "carrier-pigeon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseProto(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseProto(%q) error = nil, want error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProto(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseProto(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        Config
		wantErrors int
	}{
		{
			name:       "valid",
			cfg:        Config{Host: "localhost", Port: 2222, Proto: ProtoTCP},
			wantErrors: 0,
		},
		{
			name:       "port too low",
			cfg:        Config{Port: 0, Proto: ProtoTCP},
			wantErrors: 1,
		},
		{
			name:       "port too high",
			cfg:        Config{Port: 70000, Proto: ProtoTCP},
			wantErrors: 1,
		},
		{
			name:       "bad proto",
			cfg:        Config{Port: 2222, Proto: Proto("smoke-signals")},
			wantErrors: 1,
		},
		{
			name:       "everything wrong",
			cfg:        Config{Port: -1, Proto: Proto("")},
			wantErrors: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.cfg.Validate(); len(got) != tc.wantErrors {
				t.Errorf("Validate() = %d errors (%v), want %d", len(got), got, tc.wantErrors)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "host and port", cfg: Config{Host: "example.org", Port: 2222}, want: "example.org:2222"},
		{name: "empty host", cfg: Config{Port: 80}, want: ":80"},
		{name: "ipv6 host", cfg: Config{Host: "::1", Port: 22}, want: "[::1]:22"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.cfg.Addr(); got != tc.want {
				t.Errorf("Addr() = %q, want %q", got, tc.want)
			}
		})
	}
}
