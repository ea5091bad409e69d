// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dhgroups provides the MODP groups of RFC 3526 for Diffie-Hellman key
// exchange: their parameters, group elements with modular multiplication and
// exponentiation, and prime-order subgroups with a generator of a requested size.
//
// Elements are bound to their group by a type parameter:
//
//	g := dhgroups.GeneratorElement[dhgroups.MODPGroup14]()
//	A := g.Exp(a)       // sent to the peer
//	shared := B.Exp(a)  // B received from the peer
//
// When the group is only known at runtime, use Lookup and TaggedElement.
package dhgroups
