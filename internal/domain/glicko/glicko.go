// Package glicko implements the Glicko-2 rating update.
//
// Naming follows Glickman's paper (https://www.glicko.net/glicko/glicko2.pdf):
// mu and phi are the rating and deviation on the internal scale, sigma
// is the volatility, tau constrains volatility change, g weights an
// opponent by their deviation, and E is the expected score against an
// opponent. Public values live on the familiar 1500 scale.
package glicko

import "math"

// Standard starting values on the public scale.
const (
	DefaultRating     = 1500.0
	DefaultDeviation  = 350.0
	DefaultVolatility = 0.06

	// DefaultTau is Glickman's recommended volatility constraint.
	DefaultTau = 0.5
)

const (
	scale   = 173.7178
	epsilon = 1e-6
)

// Evaluation is an entity's strength estimate on the public scale.
type Evaluation struct {
	Rating     float64
	Deviation  float64
	Volatility float64
}

// NewEvaluation returns the standard starting evaluation.
func NewEvaluation() Evaluation {
	return Evaluation{
		Rating:     DefaultRating,
		Deviation:  DefaultDeviation,
		Volatility: DefaultVolatility,
	}
}

// Outcome is one game within a rating period, holding the opponent's
// values as they stood at the start of the period. All fields are
// precomputed internal-scale terms.
type Outcome struct {
	mu    float64
	phi   float64
	g     float64
	e     float64
	score float64
}

// NewOutcome builds an Outcome for a player with the given public
// rating against opp. Score is the player's result in [0,1].
func NewOutcome(rating float64, opp Evaluation, outcomeScore float64) Outcome {
	mu := toMu(rating)
	oppMu := toMu(opp.Rating)
	oppPhi := toPhi(opp.Deviation)
	g := weight(oppPhi)
	return Outcome{
		mu:    oppMu,
		phi:   oppPhi,
		g:     g,
		e:     expected(mu, oppMu, g),
		score: outcomeScore,
	}
}

// Update applies one rating period of outcomes to curr and returns the
// new evaluation. With no outcomes, only the deviation grows (the
// paper's idle-period step); rating and volatility are unchanged.
func Update(curr Evaluation, outcomes []Outcome, tau float64) Evaluation {
	mu := toMu(curr.Rating)
	phi := toPhi(curr.Deviation)
	sigma := curr.Volatility

	if len(outcomes) == 0 {
		phiStar := math.Sqrt(phi*phi + sigma*sigma)
		return Evaluation{
			Rating:     curr.Rating,
			Deviation:  phiStar * scale,
			Volatility: sigma,
		}
	}

	// Steps 3 and 4: estimated variance and rating improvement.
	var vInv, improvement float64
	for _, o := range outcomes {
		vInv += o.g * o.g * o.e * (1 - o.e)
		improvement += o.g * (o.score - o.e)
	}
	v := 1 / vInv
	delta := v * improvement

	// Steps 5 through 7.
	sigmaNew := volatilityPrime(sigma, delta, phi, v, tau)
	phiStar := math.Sqrt(phi*phi + sigmaNew*sigmaNew)
	phiNew := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	muNew := mu + phiNew*phiNew*improvement

	return Evaluation{
		Rating:     fromMu(muNew),
		Deviation:  phiNew * scale,
		Volatility: sigmaNew,
	}
}

// volatilityPrime solves for the new volatility with the paper's
// Illinois-style iteration on f(x) = 0.
func volatilityPrime(sigma, delta, phi, v, tau float64) float64 {
	a := math.Log(sigma * sigma)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(tau*tau)
	}

	A := a
	var B float64
	if delta*delta > phi*phi+v {
		B = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*tau) < 0 {
			k++
		}
		B = a - k*tau
	}

	fA, fB := f(A), f(B)
	for math.Abs(B-A) > epsilon {
		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if fC*fB <= 0 {
			A, fA = B, fB
		} else {
			fA /= 2
		}
		B, fB = C, fC
	}
	return math.Exp(A / 2)
}

func toMu(rating float64) float64 { return (rating - DefaultRating) / scale }

func fromMu(mu float64) float64 { return mu*scale + DefaultRating }

func toPhi(deviation float64) float64 { return deviation / scale }

// weight reduces the influence of opponents with uncertain ratings.
func weight(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// expected is the expected score against an opponent at oppMu.
func expected(mu, oppMu, g float64) float64 {
	return 1 / (1 + math.Exp(-g*(mu-oppMu)))
}
