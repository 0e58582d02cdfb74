package family_test

import (
	"fmt"

	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
)

func ExampleGraph() {
	g := family.New()
	homer, _ := g.AddPerson(family.Person{ID: "homer", Sex: family.Male, FirstName: "Homer"})
	marge, _ := g.AddPerson(family.Person{ID: "marge", Sex: family.Female, FirstName: "Marge"})
	bart, _ := g.AddPerson(family.Person{ID: "bart", Sex: family.Male, FirstName: "Bart"})
	lisa, _ := g.AddPerson(family.Person{ID: "lisa", Sex: family.Female, FirstName: "Lisa"})

	_ = g.AssignSpouse(homer, marge)
	for _, kid := range []*family.Person{bart, lisa} {
		_ = g.AssignParent(kid, homer)
		_ = g.AssignParent(kid, marge)
	}

	fmt.Println("Spouse of homer:", g.Spouse(homer).FirstName)
	fmt.Println("Mother of lisa:", g.Mother(lisa).FirstName)
	fmt.Println("Siblings of bart:", len(g.Siblings(bart)))
	fmt.Println("Marge is a parent:", g.IsParent(marge))
	// Output:
	// Spouse of homer: Marge
	// Mother of lisa: Marge
	// Siblings of bart: 1
	// Marge is a parent: true
}
