package tests

import (
	"context"
	"github.com/Borislavv/go-reserved-slots"
	"github.com/Borislavv/go-reserved-slots/internal/admission"
	"github.com/Borislavv/go-reserved-slots/tests/help"
	"strconv"
	"testing"
)

func BenchmarkResolveCapability(b *testing.B) {
	cfg := help.Cfg()
	for i := 10; i < 1000; i++ {
		cfg.ReservedSlots.Set("tier-"+strconv.Itoa(i), i)
	}
	slots := reservedslots.New(context.Background(), cfg, help.Logger())
	defer func() { _ = slots.Close() }()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		var i int
		for pb.Next() {
			slots.ResolveCapability(i % 1000)
			i++
		}
	})
}

func BenchmarkOnConnect(b *testing.B) {
	slots := reservedslots.New(context.Background(), help.Cfg(), help.Logger())
	defer func() { _ = slots.Close() }()
	p := admission.NewGrants("vip")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		slots.OnConnect(p, 20, i%20)
	}
}
