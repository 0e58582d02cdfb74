package geom

import "testing"

func TestPointEqual(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want bool
	}{
		{"identical", Pt(1, 2), Pt(1, 2), true},
		{"within epsilon", Pt(75, -150), Pt(75+1e-7, -150-1e-7), true},
		{"accumulated drift", Pt(0.1+0.2, 0), Pt(0.3, 0), true},
		{"differs in x", Pt(0, 0), Pt(1e-3, 0), false},
		{"differs in y", Pt(0, 0), Pt(0, 150), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Equal(tt.q); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestPointLess(t *testing.T) {
	if !Pt(100, -150).Less(Pt(-100, 0)) {
		t.Error("higher point should sort first")
	}
	if !Pt(-75, 0).Less(Pt(75, 0)) {
		t.Error("left point should sort first on the same level")
	}
	if Pt(1, 1).Less(Pt(1+1e-7, 1)) {
		t.Error("near-equal points should not be ordered")
	}
}

func TestMidpoint(t *testing.T) {
	got := Pt(-50, -150).Midpoint(Pt(50, -150))
	if !got.Equal(Pt(0, -150)) {
		t.Errorf("Midpoint = %v, want (0, -150)", got)
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{150, 1},
		{-0.5, -1},
		{1e-9, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Sign(tt.v); got != tt.want {
			t.Errorf("Sign(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestSegmentCrosses(t *testing.T) {
	tests := []struct {
		name string
		s, u Segment
		want bool
	}{
		{
			name: "proper crossing",
			s:    Seg(Pt(0, -150), Pt(300, 0)),
			u:    Seg(Pt(150, -150), Pt(0, 0)),
			want: true,
		},
		{
			name: "fan from shared parent midpoint",
			s:    Seg(Pt(0, -150), Pt(-75, 0)),
			u:    Seg(Pt(0, -150), Pt(75, 0)),
			want: false,
		},
		{
			name: "disjoint fans",
			s:    Seg(Pt(0, -150), Pt(-75, 0)),
			u:    Seg(Pt(300, -150), Pt(225, 0)),
			want: false,
		},
		{
			name: "touching at a shared vertex across levels",
			s:    Seg(Pt(0, -150), Pt(75, 0)),
			u:    Seg(Pt(75, 0), Pt(0, 150)),
			want: false,
		},
		{
			name: "t junction",
			s:    Seg(Pt(-100, 0), Pt(100, 0)),
			u:    Seg(Pt(0, 0), Pt(0, 150)),
			want: true,
		},
		{
			name: "parallel",
			s:    Seg(Pt(0, 0), Pt(0, 150)),
			u:    Seg(Pt(150, 0), Pt(150, 150)),
			want: false,
		},
		{
			name: "collinear overlap",
			s:    Seg(Pt(0, 0), Pt(0, 150)),
			u:    Seg(Pt(0, 75), Pt(0, 300)),
			want: true,
		},
		{
			name: "collinear end to end",
			s:    Seg(Pt(0, 0), Pt(0, 150)),
			u:    Seg(Pt(0, 150), Pt(0, 300)),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Crosses(tt.u); got != tt.want {
				t.Errorf("Crosses = %v, want %v", got, tt.want)
			}
			if got := tt.u.Crosses(tt.s); got != tt.want {
				t.Errorf("reversed Crosses = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := Seg(Pt(0, 0), Pt(100, 100)).Intersection(Seg(Pt(0, 100), Pt(100, 0)))
	if !ok {
		t.Fatal("expected an intersection")
	}
	if !p.Equal(Pt(50, 50)) {
		t.Errorf("Intersection = %v, want (50, 50)", p)
	}
	if _, ok := Seg(Pt(0, 0), Pt(10, 0)).Intersection(Seg(Pt(0, 5), Pt(10, 5))); ok {
		t.Error("parallel segments should not intersect")
	}
}

func TestSegmentBounds(t *testing.T) {
	lo, hi := Seg(Pt(75, 150), Pt(-50, 0)).Bounds()
	if !lo.Equal(Pt(-50, 0)) || !hi.Equal(Pt(75, 150)) {
		t.Errorf("Bounds = %v, %v, want (-50, 0), (75, 150)", lo, hi)
	}
}
