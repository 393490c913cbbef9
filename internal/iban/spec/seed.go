package spec

// Default returns the seeded specification table. Positions are character
// offsets into the BBAN; countries without a branch code carry a zero-width
// branch range so generation pads purely into the bank code field.
//
// The table covers the countries exercised by the service today; extend it by
// appending MustCountry records (construction panics on malformed entries, so
// a corrupt table can never reach serving).
func Default() *Registry {
	return NewRegistry(
		MustCountry("AT", 20, "5!n11!n", map[Component]Range{
			ComponentBankCode:    {0, 5},
			ComponentAccountCode: {5, 16},
		}),
		MustCountry("BE", 16, "3!n7!n2!n", map[Component]Range{
			ComponentBankCode:    {0, 3},
			ComponentAccountCode: {3, 10},
		}),
		MustCountry("CH", 21, "5!n12!c", map[Component]Range{
			ComponentBankCode:    {0, 5},
			ComponentAccountCode: {5, 17},
		}),
		MustCountry("DE", 22, "8!n10!n", map[Component]Range{
			ComponentBankCode:    {0, 8},
			ComponentAccountCode: {8, 18},
		}),
		MustCountry("ES", 24, "4!n4!n1!n1!n10!n", map[Component]Range{
			ComponentBankCode:    {0, 4},
			ComponentBranchCode:  {4, 8},
			ComponentAccountCode: {10, 20},
		}),
		MustCountry("FR", 27, "5!n5!n11!c2!n", map[Component]Range{
			ComponentBankCode:    {0, 5},
			ComponentBranchCode:  {5, 10},
			ComponentAccountCode: {10, 21},
		}),
		MustCountry("GB", 22, "4!a6!n8!n", map[Component]Range{
			ComponentBankCode:    {0, 4},
			ComponentBranchCode:  {4, 10},
			ComponentAccountCode: {10, 18},
		}),
		MustCountry("IT", 27, "1!a5!n5!n12!c", map[Component]Range{
			ComponentBankCode:    {1, 6},
			ComponentBranchCode:  {6, 11},
			ComponentAccountCode: {11, 23},
		}),
		MustCountry("NL", 18, "4!a10!n", map[Component]Range{
			ComponentBankCode:    {0, 4},
			ComponentAccountCode: {4, 14},
		}),
		MustCountry("PL", 28, "8!n16!n", map[Component]Range{
			ComponentBankCode:    {0, 3},
			ComponentBranchCode:  {3, 7},
			ComponentAccountCode: {8, 24},
		}),
	)
}
