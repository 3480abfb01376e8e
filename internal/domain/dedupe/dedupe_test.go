package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	dedupe "github.com/okian/tianwen/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, int64(0))
			})
		})

		Convey("When recording IDs", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the ID is new", func() {
				seen := d.SeenAndRecord(ctx, "rec-1")

				Convey("Then it should return false and record the ID", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, int64(1))
				})
			})

			Convey("And the ID was already seen", func() {
				d.SeenAndRecord(ctx, "rec-1")
				seen := d.SeenAndRecord(ctx, " rec-1 ")

				Convey("Then it should return true regardless of surrounding spaces", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, int64(1))
				})
			})

			Convey("And the ID is blank", func() {
				first := d.SeenAndRecord(ctx, "")
				second := d.SeenAndRecord(ctx, "  ")

				Convey("Then it should never be reported as seen", func() {
					So(first, ShouldBeFalse)
					So(second, ShouldBeFalse)
					So(d.Size(), ShouldEqual, int64(0))
				})
			})

			Convey("And many distinct IDs are recorded", func() {
				for i := 1; i <= 1000; i++ {
					So(d.SeenAndRecord(ctx, fmt.Sprintf("rec-%d", i)), ShouldBeFalse)
				}

				Convey("Then none should be forgotten", func() {
					So(d.Size(), ShouldEqual, int64(1000))
					So(d.SeenAndRecord(ctx, "rec-1"), ShouldBeTrue)
				})
			})
		})
	})
}
