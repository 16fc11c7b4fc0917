package tinsel

import "github.com/go-gl/mathgl/mgl64"

// Synthetic landmark hands for the script runner and tests. Geometry is
// schematic, not anatomical: each builder places fingertips at wrist-distance
// ratios that clearly pass or fail the classifier's extension tests. Image
// coordinates, so y grows downward.

// baseHand lays out a neutral hand: wrist at (wristX, 0.8), all four fingers
// curled, thumb curled.
func baseHand(wristX float64) *Landmarks {
	l := &Landmarks{}
	wrist := mgl64.Vec3{wristX, 0.8, 0}
	l[LandmarkWrist] = wrist

	// thumb chain angled out to the side, clear of the curled index tip
	thumbDir := mgl64.Vec3{-1, -0.25, 0}.Normalize()
	l[LandmarkThumbCMC] = wrist.Add(thumbDir.Mul(0.04))
	l[LandmarkThumbMCP] = wrist.Add(thumbDir.Mul(0.07))
	l[LandmarkThumbIP] = wrist.Add(thumbDir.Mul(0.10))
	l[LandmarkThumbTip] = wrist.Add(thumbDir.Mul(0.10)) // curled: ratio 1.0

	// finger chains fan upward
	dirs := [4]mgl64.Vec3{
		{-0.15, -1, 0}, // index
		{-0.05, -1, 0}, // middle
		{0.05, -1, 0},  // ring
		{0.15, -1, 0},  // pinky
	}
	chains := [4][4]int{
		{LandmarkIndexMCP, LandmarkIndexPIP, LandmarkIndexDIP, LandmarkIndexTip},
		{LandmarkMiddleMCP, LandmarkMiddlePIP, LandmarkMiddleDIP, LandmarkMiddleTip},
		{LandmarkRingMCP, LandmarkRingPIP, LandmarkRingDIP, LandmarkRingTip},
		{LandmarkPinkyMCP, LandmarkPinkyPIP, LandmarkPinkyDIP, LandmarkPinkyTip},
	}
	for f, chain := range chains {
		dir := dirs[f].Normalize()
		l[chain[0]] = wrist.Add(dir.Mul(0.10))           // MCP
		l[chain[1]] = wrist.Add(dir.Mul(0.12))           // PIP
		l[chain[2]] = wrist.Add(dir.Mul(0.10))           // DIP folded back
		l[chain[3]] = wrist.Add(dir.Mul(0.08))           // tip curled: ratio 0.8
	}
	return l
}

// extendFinger moves a finger's tip chain out to a clearly-extended length.
func extendFinger(l *Landmarks, mcp, pip, dip, tip int) {
	wrist := l[LandmarkWrist]
	dir := l[mcp].Sub(wrist).Normalize()
	l[pip] = wrist.Add(dir.Mul(0.14))
	l[dip] = wrist.Add(dir.Mul(0.165))
	l[tip] = wrist.Add(dir.Mul(0.19)) // ratio 1.9
}

// extendThumb stretches the thumb tip to the given wrist-distance ratio
// relative to the IP joint.
func extendThumb(l *Landmarks, ratio float64) {
	wrist := l[LandmarkWrist]
	dir := l[LandmarkThumbIP].Sub(wrist).Normalize()
	ipDist := l[LandmarkThumbIP].Sub(wrist).Len()
	l[LandmarkThumbTip] = wrist.Add(dir.Mul(ipDist * ratio))
}

// handFist: all four fingers curled, thumb curled.
func handFist(wristX float64) *Landmarks {
	return baseHand(wristX)
}

// handOpenPalm: all four fingers extended.
func handOpenPalm(wristX float64) *Landmarks {
	l := baseHand(wristX)
	extendFinger(l, LandmarkIndexMCP, LandmarkIndexPIP, LandmarkIndexDIP, LandmarkIndexTip)
	extendFinger(l, LandmarkMiddleMCP, LandmarkMiddlePIP, LandmarkMiddleDIP, LandmarkMiddleTip)
	extendFinger(l, LandmarkRingMCP, LandmarkRingPIP, LandmarkRingDIP, LandmarkRingTip)
	extendFinger(l, LandmarkPinkyMCP, LandmarkPinkyPIP, LandmarkPinkyDIP, LandmarkPinkyTip)
	return l
}

// handThumbsUp: fingers curled, thumb extended straight up above its joints.
func handThumbsUp(wristX float64) *Landmarks {
	l := baseHand(wristX)
	wrist := l[LandmarkWrist]
	// re-aim the thumb chain vertically so the tip sits above IP and MCP
	up := mgl64.Vec3{0, -1, 0}
	l[LandmarkThumbCMC] = wrist.Add(up.Mul(0.04))
	l[LandmarkThumbMCP] = wrist.Add(up.Mul(0.07))
	l[LandmarkThumbIP] = wrist.Add(up.Mul(0.10))
	l[LandmarkThumbTip] = wrist.Add(up.Mul(0.15)) // ratio 1.5 > 1.2
	return l
}

// handPinch: thumb and index tips touching, remaining fingers extended.
func handPinch(wristX float64) *Landmarks {
	l := baseHand(wristX)
	extendFinger(l, LandmarkMiddleMCP, LandmarkMiddlePIP, LandmarkMiddleDIP, LandmarkMiddleTip)
	extendFinger(l, LandmarkRingMCP, LandmarkRingPIP, LandmarkRingDIP, LandmarkRingTip)
	extendFinger(l, LandmarkPinkyMCP, LandmarkPinkyPIP, LandmarkPinkyDIP, LandmarkPinkyTip)
	// bring both tips to a shared pinch point
	pinchAt := l[LandmarkWrist].Add(mgl64.Vec3{-0.06, -0.10, 0})
	l[LandmarkThumbTip] = pinchAt
	l[LandmarkIndexTip] = pinchAt.Add(mgl64.Vec3{0.01, 0, 0})
	return l
}

// handLShape: thumb and index extended, pinky curled.
func handLShape(wristX float64) *Landmarks {
	l := baseHand(wristX)
	extendThumb(l, 1.4)
	extendFinger(l, LandmarkIndexMCP, LandmarkIndexPIP, LandmarkIndexDIP, LandmarkIndexTip)
	return l
}
