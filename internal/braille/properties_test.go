package braille_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/braillegrid/internal/braille"
)

var _ = Describe("Canvas", func() {
	var c *braille.Canvas

	BeforeEach(func() {
		var err error
		c, err = braille.New(16, 16)
		Expect(err).NotTo(HaveOccurred())
	})

	pixels := func() [][2]int {
		var out [][2]int
		for y := 0; y < 12; y++ {
			for x := 0; x < 10; x++ {
				out = append(out, [2]int{x, y})
			}
		}
		return out
	}

	It("reads back every pixel that was set", func() {
		for _, p := range pixels() {
			c.Set(p[0], p[1])
			Expect(c.Get(p[0], p[1])).To(BeTrue())
			c.Set(p[0], p[1])
			Expect(c.Get(p[0], p[1])).To(BeTrue())
		}
	})

	It("restores the original value after two toggles", func() {
		c.Set(4, 4)
		c.Set(7, 9)
		for _, p := range pixels() {
			before, err := c.Get(p[0], p[1])
			if err != nil {
				Expect(err).To(MatchError(braille.ErrOutOfRange))
				before = false
			}
			c.Toggle(p[0], p[1])
			c.Toggle(p[0], p[1])
			Expect(c.Get(p[0], p[1])).To(Equal(before))
		}
	})

	It("clears only the addressed dot on unset", func() {
		for _, p := range pixels() {
			c.Set(p[0], p[1])
		}
		before := c.Cells()
		c.Unset(5, 6)

		after := c.Cells()
		Expect(c.Get(5, 6)).To(BeFalse())
		Expect(after).To(HaveLen(len(before)))
		for i := range before {
			if i == 2*c.Width()+1 {
				Expect(after[i]).To(Equal(before[i] &^ 0x20))
				continue
			}
			Expect(after[i]).To(Equal(before[i]), "cell %d", i)
		}
	})

	It("forgets every pixel on clear", func() {
		for _, p := range pixels() {
			c.Set(p[0], p[1])
		}
		c.Clear()
		for _, p := range pixels() {
			lit, err := c.Get(p[0], p[1])
			if err != nil {
				Expect(err).To(MatchError(braille.ErrOutOfRange))
				continue
			}
			Expect(lit).To(BeFalse())
		}
	})

	It("fails reads on a canvas that was never written", func() {
		for _, p := range pixels() {
			_, err := c.Get(p[0], p[1])
			Expect(err).To(MatchError(braille.ErrOutOfRange))
		}
	})

	DescribeTable("cell dimensions",
		func(w, h, cellW, cellH int) {
			canvas, err := braille.New(w, h)
			Expect(err).NotTo(HaveOccurred())
			Expect(canvas.Width()).To(Equal(cellW))
			Expect(canvas.Height()).To(Equal(cellH))
		},
		Entry("square", 4, 4, 2, 1),
		Entry("odd sizes truncate", 9, 13, 4, 3),
		Entry("terminal", 160, 96, 80, 24),
	)
})
