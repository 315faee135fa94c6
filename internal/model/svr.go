package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SVRParams are the fixed hyperparameters of the epsilon-SVR.
type SVRParams struct {
	C             float64
	Gamma         float64
	Epsilon       float64
	Tolerance     float64
	MaxIterations int
}

// DefaultSVRParams returns C=100, gamma=0.1, epsilon=0.1.
func DefaultSVRParams() SVRParams {
	return SVRParams{
		C:             100,
		Gamma:         0.1,
		Epsilon:       0.1,
		Tolerance:     1e-3,
		MaxIterations: 1_000_000,
	}
}

// SolverInfo reports how the optimizer finished.
type SolverInfo struct {
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// SVR is a fitted epsilon support vector regressor with an RBF kernel:
//
//	f(x) = sum_k DualCoef[k] * exp(-Gamma * |SupportVectors[k] - x|^2) + Intercept
type SVR struct {
	Gamma          float64     `json:"gamma"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       []float64   `json:"dual_coef"`
	Intercept      float64     `json:"intercept"`
}

// Validate checks that the support vectors match the expected width.
func (m *SVR) Validate(dim int) error {
	if m.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %v", m.Gamma)
	}
	if len(m.SupportVectors) != len(m.DualCoef) {
		return fmt.Errorf("%d support vectors but %d coefficients", len(m.SupportVectors), len(m.DualCoef))
	}
	for i, sv := range m.SupportVectors {
		if len(sv) != dim {
			return fmt.Errorf("%w: support vector %d has %d values, want %d", ErrDimension, i, len(sv), dim)
		}
	}
	return nil
}

// Predict evaluates the decision function on an already scaled row.
func (m *SVR) Predict(x []float64) float64 {
	if len(m.DualCoef) == 0 {
		return m.Intercept
	}
	k := make([]float64, len(m.SupportVectors))
	for i, sv := range m.SupportVectors {
		k[i] = rbf(sv, x, m.Gamma)
	}
	return mat.Dot(mat.NewVecDense(len(k), k), mat.NewVecDense(len(m.DualCoef), m.DualCoef)) + m.Intercept
}

func rbf(a, b []float64, gamma float64) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return math.Exp(-gamma * d)
}

// FitSVR trains an epsilon-SVR on scaled rows x and targets y.
//
// The dual is solved with sequential minimal optimization using second
// order working set selection, over 2l variables: alpha[i] for the upper
// side of the epsilon tube and alpha[i+l] for the lower side.
func FitSVR(x [][]float64, y []float64, p SVRParams) (*SVR, SolverInfo, error) {
	l := len(x)
	if l == 0 {
		return nil, SolverInfo{}, fmt.Errorf("no training rows")
	}
	if len(y) != l {
		return nil, SolverInfo{}, fmt.Errorf("%d rows but %d targets", l, len(y))
	}
	dim := len(x[0])
	for i, row := range x {
		if len(row) != dim {
			return nil, SolverInfo{}, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimension, i, len(row), dim)
		}
	}

	s := newSMOSolver(x, y, p)
	info := s.solve()
	rho := s.rho()

	m := &SVR{
		Gamma:     p.Gamma,
		Intercept: -rho,
	}
	for i := 0; i < l; i++ {
		coef := s.alpha[i] - s.alpha[i+l]
		if coef == 0 {
			continue
		}
		sv := make([]float64, dim)
		copy(sv, x[i])
		m.SupportVectors = append(m.SupportVectors, sv)
		m.DualCoef = append(m.DualCoef, coef)
	}
	return m, info, nil
}

// tau replaces non-positive curvature in the two-variable subproblem.
const tau = 1e-12

type smoSolver struct {
	l, n    int
	c       float64
	tol     float64
	maxIter int

	gram  *mat.SymDense
	sign  []float64
	alpha []float64
	grad  []float64
}

func newSMOSolver(x [][]float64, y []float64, p SVRParams) *smoSolver {
	l := len(x)
	gram := mat.NewSymDense(l, nil)
	for i := 0; i < l; i++ {
		for j := i; j < l; j++ {
			gram.SetSym(i, j, rbf(x[i], x[j], p.Gamma))
		}
	}

	s := &smoSolver{
		l:       l,
		n:       2 * l,
		c:       p.C,
		tol:     p.Tolerance,
		maxIter: p.MaxIterations,
		gram:    gram,
		sign:    make([]float64, 2*l),
		alpha:   make([]float64, 2*l),
		grad:    make([]float64, 2*l),
	}
	// With alpha = 0 the gradient equals the linear term.
	for i := 0; i < l; i++ {
		s.sign[i] = 1
		s.grad[i] = p.Epsilon - y[i]
		s.sign[i+l] = -1
		s.grad[i+l] = p.Epsilon + y[i]
	}
	return s
}

func (s *smoSolver) q(i, j int) float64 {
	return s.sign[i] * s.sign[j] * s.gram.At(i%s.l, j%s.l)
}

func (s *smoSolver) qd(i int) float64 {
	k := i % s.l
	return s.gram.At(k, k)
}

func (s *smoSolver) isUpper(i int) bool { return s.alpha[i] >= s.c }
func (s *smoSolver) isLower(i int) bool { return s.alpha[i] <= 0 }

func (s *smoSolver) solve() SolverInfo {
	var iter int
	for iter < s.maxIter {
		i, j, optimal := s.selectWorkingSet()
		if optimal {
			return SolverInfo{Iterations: iter, Converged: true}
		}
		iter++
		s.update(i, j)
	}
	return SolverInfo{Iterations: iter, Converged: false}
}

func (s *smoSolver) selectWorkingSet() (int, int, bool) {
	gmax := math.Inf(-1)
	gmaxIdx := -1
	for t := 0; t < s.n; t++ {
		if s.sign[t] > 0 {
			if !s.isUpper(t) && -s.grad[t] >= gmax {
				gmax = -s.grad[t]
				gmaxIdx = t
			}
		} else if !s.isLower(t) && s.grad[t] >= gmax {
			gmax = s.grad[t]
			gmaxIdx = t
		}
	}
	if gmaxIdx == -1 {
		return -1, -1, true
	}

	i := gmaxIdx
	gmax2 := math.Inf(-1)
	gminIdx := -1
	objDiffMin := math.Inf(1)
	for j := 0; j < s.n; j++ {
		var gradDiff, quad float64
		if s.sign[j] > 0 {
			if s.isLower(j) {
				continue
			}
			if s.grad[j] >= gmax2 {
				gmax2 = s.grad[j]
			}
			gradDiff = gmax + s.grad[j]
			quad = s.qd(i) + s.qd(j) - 2*s.sign[i]*s.q(i, j)
		} else {
			if s.isUpper(j) {
				continue
			}
			if -s.grad[j] >= gmax2 {
				gmax2 = -s.grad[j]
			}
			gradDiff = gmax - s.grad[j]
			quad = s.qd(i) + s.qd(j) + 2*s.sign[i]*s.q(i, j)
		}
		if gradDiff <= 0 {
			continue
		}
		if quad <= 0 {
			quad = tau
		}
		if obj := -(gradDiff * gradDiff) / quad; obj <= objDiffMin {
			gminIdx = j
			objDiffMin = obj
		}
	}

	if gmax+gmax2 < s.tol || gminIdx == -1 {
		return -1, -1, true
	}
	return i, gminIdx, false
}

// update solves the two-variable subproblem for (i, j) and keeps both
// alphas inside [0, C].
func (s *smoSolver) update(i, j int) {
	c := s.c
	oldI, oldJ := s.alpha[i], s.alpha[j]

	if s.sign[i] != s.sign[j] {
		quad := s.qd(i) + s.qd(j) + 2*s.q(i, j)
		if quad <= 0 {
			quad = tau
		}
		delta := (-s.grad[i] - s.grad[j]) / quad
		diff := oldI - oldJ
		s.alpha[i] += delta
		s.alpha[j] += delta

		if diff > 0 {
			if s.alpha[j] < 0 {
				s.alpha[j] = 0
				s.alpha[i] = diff
			}
		} else if s.alpha[i] < 0 {
			s.alpha[i] = 0
			s.alpha[j] = -diff
		}
		if diff > 0 {
			if s.alpha[i] > c {
				s.alpha[i] = c
				s.alpha[j] = c - diff
			}
		} else if s.alpha[j] > c {
			s.alpha[j] = c
			s.alpha[i] = c + diff
		}
	} else {
		quad := s.qd(i) + s.qd(j) - 2*s.q(i, j)
		if quad <= 0 {
			quad = tau
		}
		delta := (s.grad[i] - s.grad[j]) / quad
		sum := oldI + oldJ
		s.alpha[i] -= delta
		s.alpha[j] += delta

		if sum > c {
			if s.alpha[i] > c {
				s.alpha[i] = c
				s.alpha[j] = sum - c
			}
		} else if s.alpha[j] < 0 {
			s.alpha[j] = 0
			s.alpha[i] = sum
		}
		if sum > c {
			if s.alpha[j] > c {
				s.alpha[j] = c
				s.alpha[i] = sum - c
			}
		} else if s.alpha[i] < 0 {
			s.alpha[i] = 0
			s.alpha[j] = sum
		}
	}

	dI := s.alpha[i] - oldI
	dJ := s.alpha[j] - oldJ
	for k := 0; k < s.n; k++ {
		s.grad[k] += s.q(i, k)*dI + s.q(j, k)*dJ
	}
}

// rho is the offset of the decision function. Free variables pin it down
// exactly; otherwise it is the midpoint of the feasible interval.
func (s *smoSolver) rho() float64 {
	ub := math.Inf(1)
	lb := math.Inf(-1)
	var sumFree float64
	var nFree int

	for i := 0; i < s.n; i++ {
		yG := s.sign[i] * s.grad[i]
		switch {
		case s.isUpper(i):
			if s.sign[i] < 0 {
				ub = math.Min(ub, yG)
			} else {
				lb = math.Max(lb, yG)
			}
		case s.isLower(i):
			if s.sign[i] > 0 {
				ub = math.Min(ub, yG)
			} else {
				lb = math.Max(lb, yG)
			}
		default:
			nFree++
			sumFree += yG
		}
	}

	if nFree > 0 {
		return sumFree / float64(nFree)
	}
	return (ub + lb) / 2
}
