package quadtree

import (
	"image"
	"testing"

	"go.viam.com/test"
)

func TestRectangleBounds(t *testing.T) {
	r := NewRectangle(3, 4, 10, 6)
	test.That(t, r.XMin(), test.ShouldEqual, 3)
	test.That(t, r.XMax(), test.ShouldEqual, 13)
	test.That(t, r.YMin(), test.ShouldEqual, 4)
	test.That(t, r.YMax(), test.ShouldEqual, 10)
	test.That(t, r.Area(), test.ShouldEqual, 60)
	test.That(t, r.Image(), test.ShouldResemble, image.Rect(3, 4, 13, 10))
	test.That(t, RectangleFromImage(image.Rect(13, 10, 3, 4)), test.ShouldResemble, r)
	test.That(t, r.String(), test.ShouldEqual, "(3,4 10x6)")
}

func TestRectangleContains(t *testing.T) {
	for _, r := range []Rectangle{
		NewRectangle(0, 0, 1, 1),
		NewRectangle(-5, -5, 10, 10),
		NewRectangle(100, 20, 7, 3),
		NewRectangle(2, 2, 0, 0),
	} {
		// corners and center
		test.That(t, r.Contains(r.XMin(), r.YMin()), test.ShouldBeTrue)
		test.That(t, r.Contains(r.XMax(), r.YMin()), test.ShouldBeTrue)
		test.That(t, r.Contains(r.XMin(), r.YMax()), test.ShouldBeTrue)
		test.That(t, r.Contains(r.XMax(), r.YMax()), test.ShouldBeTrue)
		test.That(t, r.Contains(r.X+r.Width/2, r.Y+r.Height/2), test.ShouldBeTrue)

		// just outside each half plane
		test.That(t, r.Contains(r.XMin()-1, r.YMin()), test.ShouldBeFalse)
		test.That(t, r.Contains(r.XMax()+1, r.YMin()), test.ShouldBeFalse)
		test.That(t, r.Contains(r.XMin(), r.YMin()-1), test.ShouldBeFalse)
		test.That(t, r.Contains(r.XMin(), r.YMax()+1), test.ShouldBeFalse)
	}
}

func TestRectangleIntersects(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)

	test.That(t, r.Intersects(NewRectangle(5, 5, 10, 10)), test.ShouldBeTrue)
	test.That(t, r.Intersects(NewRectangle(2, 2, 1, 1)), test.ShouldBeTrue)
	test.That(t, r.Intersects(NewRectangle(-5, -5, 30, 30)), test.ShouldBeTrue)
	// touching edges count as overlap.
	test.That(t, r.Intersects(NewRectangle(10, 0, 5, 5)), test.ShouldBeTrue)
	test.That(t, r.Intersects(NewRectangle(0, -5, 5, 5)), test.ShouldBeTrue)

	test.That(t, r.Intersects(NewRectangle(11, 0, 5, 5)), test.ShouldBeFalse)
	test.That(t, r.Intersects(NewRectangle(0, 11, 5, 5)), test.ShouldBeFalse)
	test.That(t, r.Intersects(NewRectangle(-6, 0, 5, 5)), test.ShouldBeFalse)
	test.That(t, r.Intersects(NewRectangle(0, -6, 5, 5)), test.ShouldBeFalse)
}

func TestRectangleQuadrants(t *testing.T) {
	t.Run("even size", func(t *testing.T) {
		q := NewRectangle(4, 8, 16, 8).Quadrants()
		test.That(t, q[NorthWest], test.ShouldResemble, NewRectangle(4, 8, 8, 4))
		test.That(t, q[NorthEast], test.ShouldResemble, NewRectangle(12, 8, 8, 4))
		test.That(t, q[SouthWest], test.ShouldResemble, NewRectangle(4, 12, 8, 4))
		test.That(t, q[SouthEast], test.ShouldResemble, NewRectangle(12, 12, 8, 4))
	})

	t.Run("odd sizes tile exactly", func(t *testing.T) {
		for _, r := range []Rectangle{
			NewRectangle(0, 0, 7, 5),
			NewRectangle(3, 9, 1, 1),
			NewRectangle(-2, 5, 13, 2),
			NewRectangle(1, 1, 0, 3),
		} {
			q := r.Quadrants()
			area := 0
			for _, quadrant := range q {
				area += quadrant.Area()
				test.That(t, quadrant.Width, test.ShouldBeGreaterThanOrEqualTo, 0)
				test.That(t, quadrant.Height, test.ShouldBeGreaterThanOrEqualTo, 0)
			}
			test.That(t, area, test.ShouldEqual, r.Area())
			test.That(t, q[NorthWest].XMax(), test.ShouldEqual, q[NorthEast].XMin())
			test.That(t, q[NorthWest].YMax(), test.ShouldEqual, q[SouthWest].YMin())
			test.That(t, q[SouthEast].XMax(), test.ShouldEqual, r.XMax())
			test.That(t, q[SouthEast].YMax(), test.ShouldEqual, r.YMax())
		}
	})
}
