package viewport

// Scale writes the per-pixel step of the live rectangle into dx and dy:
//
//	dx = (XMax - XMin) / W
//	dy = (YMax - YMin) / H
//
// dx and dy must have been initialized by the same backend. The size must
// be positive; a zero width or height divides by zero.
func (b *Bounds[T, M]) Scale(dx, dy *T) {
	m := b.m
	m.Sub(dx, &b.XMax, &b.XMin)
	m.Quo(dx, dx, &b.W)
	m.Sub(dy, &b.YMax, &b.YMin)
	m.Quo(dy, dy, &b.H)
}

// Normalize translates the live rectangle so its center sits at the origin.
// The center is written to offX and offY when they are non-nil.
//
// Scaling a centered rectangle keeps magnitudes small, which matters when
// the viewport is far from the origin at deep zoom.
func (b *Bounds[T, M]) Normalize(offX, offY *T) {
	m := b.m
	var cx, cy, two T
	m.Init(&cx)
	m.Init(&cy)
	m.Init(&two)
	defer m.Release(&cx)
	defer m.Release(&cy)
	defer m.Release(&two)

	m.SetInt(&two, 2)

	m.Add(&cx, &b.XMax, &b.XMin)
	m.Quo(&cx, &cx, &two)
	m.Add(&cy, &b.YMax, &b.YMin)
	m.Quo(&cy, &cy, &two)

	if offX != nil {
		m.Set(offX, &cx)
	}
	if offY != nil {
		m.Set(offY, &cy)
	}

	m.Sub(&b.XMin, &b.XMin, &cx)
	m.Sub(&b.XMax, &b.XMax, &cx)
	m.Sub(&b.YMin, &b.YMin, &cy)
	m.Sub(&b.YMax, &b.YMax, &cy)
	b.refresh()
}

// Unnormalize translates the live rectangle by (offX, offY), undoing a
// Normalize that returned the same offsets.
func (b *Bounds[T, M]) Unnormalize(offX, offY *T) {
	m := b.m
	m.Add(&b.XMin, &b.XMin, offX)
	m.Add(&b.XMax, &b.XMax, offX)
	m.Add(&b.YMin, &b.YMin, offY)
	m.Add(&b.YMax, &b.YMax, offY)
	b.refresh()
}

// Zoom scales the live rectangle about its center. factor > 1 magnifies,
// 0 < factor < 1 zooms out. factor must be positive.
func (b *Bounds[T, M]) Zoom(factor float64) {
	m := b.m
	var offX, offY, f T
	m.Init(&offX)
	m.Init(&offY)
	m.Init(&f)
	defer m.Release(&offX)
	defer m.Release(&offY)
	defer m.Release(&f)

	m.SetFloat64(&f, factor)

	b.Normalize(&offX, &offY)
	m.Quo(&b.XMin, &b.XMin, &f)
	m.Quo(&b.XMax, &b.XMax, &f)
	m.Quo(&b.YMin, &b.YMin, &f)
	m.Quo(&b.YMax, &b.YMax, &f)
	b.Unnormalize(&offX, &offY)
}

// Target returns, in out{X,Y}, the fractal point under pixel (px, py) of
// the last rendered image. Pixel row 0 is the top of the image, which is
// the maximum fractal y.
func (b *Bounds[T, M]) Target(px, py int, outX, outY *T) {
	m := b.m
	var u, v, span T
	m.Init(&u)
	m.Init(&v)
	m.Init(&span)
	defer m.Release(&u)
	defer m.Release(&v)
	defer m.Release(&span)

	// u = px / W
	m.SetInt(&u, px)
	m.Quo(&u, &u, &b.W)
	// v = (H - py) / H
	m.SetInt(&v, py)
	m.Sub(&v, &b.H, &v)
	m.Quo(&v, &v, &b.H)

	// out = r_min + t * (r_max - r_min)
	m.Sub(&span, &b.RXMax, &b.RXMin)
	m.Mul(outX, &u, &span)
	m.Add(outX, outX, &b.RXMin)

	m.Sub(&span, &b.RYMax, &b.RYMin)
	m.Mul(outY, &v, &span)
	m.Add(outY, outY, &b.RYMin)
}

// PanToPixel re-centers the live rectangle on the point under pixel
// (px, py) of the last rendered image without changing its size. This lets
// a click on the rendered image recenter an already zoomed preview.
func (b *Bounds[T, M]) PanToPixel(px, py int) {
	m := b.m
	var tx, ty T
	m.Init(&tx)
	m.Init(&ty)
	defer m.Release(&tx)
	defer m.Release(&ty)

	b.Target(px, py, &tx, &ty)
	b.Normalize(nil, nil)
	b.Unnormalize(&tx, &ty)
}

// PreviewRect projects the live rectangle into the frame of the rendered
// one, mapping [r_min, r_max] onto [-1, 1]. The y axis is inverted to match
// screen orientation, so y1 belongs to YMin and y2 to YMax.
//
// PreviewRect does not modify b.
func (b *Bounds[T, M]) PreviewRect() (x1, y1, x2, y2 float64) {
	m := b.m
	var lo, hi, out T
	m.Init(&lo)
	m.Init(&hi)
	m.Init(&out)
	defer m.Release(&lo)
	defer m.Release(&hi)
	defer m.Release(&out)

	m.SetInt(&lo, -1)
	m.SetInt(&hi, 1)

	b.mapRange(&out, &b.XMin, &b.RXMin, &b.RXMax, &lo, &hi)
	x1 = m.Float64(&out)
	b.mapRange(&out, &b.XMax, &b.RXMin, &b.RXMax, &lo, &hi)
	x2 = m.Float64(&out)

	b.mapRange(&out, &b.YMin, &b.RYMin, &b.RYMax, &hi, &lo)
	y1 = m.Float64(&out)
	b.mapRange(&out, &b.YMax, &b.RYMin, &b.RYMax, &hi, &lo)
	y2 = m.Float64(&out)

	return x1, y1, x2, y2
}

// mapRange linearly maps x from [min1, max1] onto [min2, max2]:
//
//	out = (x - min1) * (max2 - min2) / (max1 - min1) + min2
func (b *Bounds[T, M]) mapRange(out, x, min1, max1, min2, max2 *T) {
	m := b.m
	var scaled, r1, r2 T
	m.Init(&scaled)
	m.Init(&r1)
	m.Init(&r2)
	defer m.Release(&scaled)
	defer m.Release(&r1)
	defer m.Release(&r2)

	m.Sub(&scaled, x, min1)
	m.Sub(&r2, max2, min2)
	m.Sub(&r1, max1, min1)

	m.Mul(out, &scaled, &r2)
	m.Quo(out, out, &r1)
	m.Add(out, out, min2)
}
