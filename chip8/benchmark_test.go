package chip8

import (
	"testing"

	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/timing"
)

func BenchmarkHostHeadless(b *testing.B) {
	frameCounts := []struct {
		name   string
		frames int
	}{
		{"frames_100", 100},
		{"frames_1000", 1000},
	}

	rom := make([]byte, MaxProgramSize)
	for i := range rom {
		rom[i] = byte(i * 37)
	}

	for _, tc := range frameCounts {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				m := NewPatternMachine()
				if err := m.Load(rom); err != nil {
					b.Fatalf("Failed to load image: %v", err)
				}

				config := DefaultConfig()
				config.Scale = 1
				config.Limiter = timing.NewNoOpLimiter()
				h := New(config, m, headless.New(tc.frames, headless.SnapshotConfig{}))
				if err := h.Init(); err != nil {
					b.Fatalf("Failed to initialize host: %v", err)
				}
				b.StartTimer()

				if err := h.Run(); err != nil {
					b.Fatalf("Host run failed: %v", err)
				}

				b.StopTimer()
				h.Cleanup()
				b.StartTimer()
			}
		})
	}
}
