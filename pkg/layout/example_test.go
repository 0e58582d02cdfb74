package layout_test

import (
	"fmt"

	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/layout"
)

func ExampleCompute() {
	g := family.New()
	homer, _ := g.AddPerson(family.Person{ID: "homer", Sex: family.Male})
	marge, _ := g.AddPerson(family.Person{ID: "marge", Sex: family.Female})
	bart, _ := g.AddPerson(family.Person{ID: "bart", Sex: family.Male})
	lisa, _ := g.AddPerson(family.Person{ID: "lisa", Sex: family.Female})
	_ = g.AssignSpouse(homer, marge)
	for _, kid := range []*family.Person{bart, lisa} {
		_ = g.AssignParent(kid, homer)
		_ = g.AssignParent(kid, marge)
	}

	res, err := layout.Compute(g, "homer")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, pp := range res.People {
		pos, _ := pp.Position()
		fmt.Println(pp.ID(), pos)
	}
	fmt.Println("crossings:", res.ConnectionConflicts())
	// Output:
	// homer (25, 0)
	// marge (125, 0)
	// bart (-75, 150)
	// lisa (75, 150)
	// crossings: 0
}

func ExampleWithStepLimit() {
	g := family.New()
	a, _ := g.AddPerson(family.Person{ID: "a", Sex: family.Male})
	m, _ := g.AddPerson(family.Person{ID: "m", Sex: family.Female})
	f, _ := g.AddPerson(family.Person{ID: "f", Sex: family.Male})
	_ = g.AssignSpouse(m, f)
	_ = g.AssignParent(a, m)
	_ = g.AssignParent(a, f)

	res, _ := layout.Compute(g, "a", layout.WithStepLimit(2))
	for _, pp := range res.People {
		pos, ok := pp.Position()
		fmt.Println(pp.ID(), ok, pos)
	}
	// Output:
	// a true (0, 0)
	// m true (75, -150)
	// f false (0, 0)
}
