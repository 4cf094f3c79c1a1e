package arena

import (
	"testing"

	"github.com/joshuapare/framekit/slotmap"
)

// BenchmarkAllocateFree measures a claim/stamp/release cycle per discipline
// on a 200 MB arena of 4 KiB frames, the configuration a buffer pool would
// run with.
func BenchmarkAllocateFree(b *testing.B) {
	const (
		capacity = 200 << 20
		slotSize = 4096
	)
	for _, d := range slotmap.Disciplines() {
		b.Run(d.String(), func(b *testing.B) {
			a, err := New(capacity, slotSize, &Options{Discipline: d})
			if err != nil {
				b.Fatal(err)
			}
			defer a.Close()

			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s, ok := a.Allocate(slotSize)
					if !ok {
						continue
					}
					a.Bytes(s)[0] = 1
					a.Free(s, slotSize)
				}
			})
			if r := a.CASRetries(); r > 0 {
				b.ReportMetric(float64(r)/float64(b.N), "cas-retries/op")
			}
		})
	}
}
