package layout_test

import (
	"fmt"

	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
)

func Example() {
	r, _ := lfsr.NewRegister("1001", "1111")
	s, err := layout.BuildRegister(r, layout.DefaultOptions())
	if err != nil {
		panic(err)
	}
	fmt.Println("boxes:", len(s.Boxes()))
	fmt.Println("tap connectors:", len(s.TapConnectors()))
	fmt.Println("feedback:", s.Feedback)
	// Output:
	// boxes: 4
	// tap connectors: 3
	// feedback: 0
}

func ExampleNewConfig() {
	for _, n := range []int{4, 12, 32} {
		c := layout.NewConfig(n)
		fmt.Printf("L=%d box=%v font=%vpt\n", n, c.BoxSize, c.ValueFontSize)
	}
	// Output:
	// L=4 box=4 font=30pt
	// L=12 box=2.5 font=18pt
	// L=32 box=2 font=15pt
}
