package iban

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schwifty/internal/iban/spec"
)

func testProvider() spec.Provider {
	return spec.Default()
}

func TestNew_GermanScenario(t *testing.T) {
	ctx := context.Background()
	v, err := New(ctx, testProvider(), "DE89370400440532013000")
	require.NoError(t, err)

	assert.Equal(t, "DE89370400440532013000", v.Compact())
	assert.Equal(t, "DE", v.CountryCode().String())
	assert.Equal(t, "89", v.ChecksumDigits())
	assert.Equal(t, "370400440532013000", v.BBAN())
	assert.Equal(t, "DE89 3704 0044 0532 0130 00", v.Formatted())

	bank, err := v.BankCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "37040044", bank)

	branch, err := v.BranchCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", branch)

	account, err := v.AccountCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0532013000", account)
}

func TestNew_NormalizesFormattedInput(t *testing.T) {
	ctx := context.Background()
	v, err := New(ctx, testProvider(), "de89 3704 0044 0532 0130 00")
	require.NoError(t, err)
	assert.Equal(t, "DE89370400440532013000", v.Compact())
}

func TestNew_ChecksumSkeleton(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves ?? to computed digits", func(t *testing.T) {
		v, err := New(ctx, testProvider(), "DE??370400440532013000")
		require.NoError(t, err)
		assert.Equal(t, "89", v.ChecksumDigits())
		assert.Equal(t, "DE89370400440532013000", v.Compact())
	})

	t.Run("skeleton with unnumerifiable bban fails even leniently", func(t *testing.T) {
		_, err := New(ctx, testProvider(), "DE??37040044053201300-", AllowInvalid())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})
}

func TestValidate_ChainOrder(t *testing.T) {
	ctx := context.Background()
	p := testProvider()

	t.Run("lowercase survives normalization but stray symbols fail characters", func(t *testing.T) {
		_, err := New(ctx, p, "DE89-3704")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("letters in the checksum position fail characters", func(t *testing.T) {
		_, err := New(ctx, p, "DEAB370400440532013000")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("unknown country fails before length", func(t *testing.T) {
		_, err := New(ctx, p, "ZZ89370400440532013000")
		assert.ErrorIs(t, err, ErrUnknownCountry)
	})

	t.Run("truncated value fails length", func(t *testing.T) {
		_, err := New(ctx, p, "DE8937040044053201300")
		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("letter in a numeric field fails structure", func(t *testing.T) {
		// Same length, valid characters, but 'A' sits inside the 10!n account
		// field. The checksum is rebuilt so only the structure check can fail.
		v, err := New(ctx, p, "DE??37040044A532013000", AllowInvalid())
		require.NoError(t, err)
		err = v.Validate(ctx)
		assert.ErrorIs(t, err, ErrInvalidBBANStructure)
		assert.Contains(t, err.Error(), "37040044A532013000")
		assert.Contains(t, err.Error(), "8!n10!n")
	})

	t.Run("flipped digit fails checksum", func(t *testing.T) {
		_, err := New(ctx, p, "DE89370400440532013001")
		assert.ErrorIs(t, err, ErrInvalidChecksum)
	})
}

func TestNew_AllowInvalid(t *testing.T) {
	ctx := context.Background()
	p := testProvider()

	v, err := New(ctx, p, "DE00370400440532013000", AllowInvalid())
	require.NoError(t, err)
	assert.Equal(t, "DE00370400440532013000", v.Compact())

	// The value still knows it is broken.
	assert.ErrorIs(t, v.Validate(ctx), ErrInvalidChecksum)

	// Lenient values with unknown countries construct, but spec-dependent
	// accessors surface the missing specification.
	v, err = New(ctx, p, "ZZ12ABC", AllowInvalid())
	require.NoError(t, err)
	_, err = v.BankCode(ctx)
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestValidate_AcceptsKnownGoodValues(t *testing.T) {
	ctx := context.Background()
	p := testProvider()

	for _, compact := range []string{
		"AT611904300234573201",
		"BE68539007547034",
		"CH9300762011623852957",
		"DE89370400440532013000",
		"ES9121000418450200051332",
		"FR1420041010050500013M02606",
		"GB29NWBK60161331926819",
		"IT60X0542811101000000123456",
		"NL91ABNA0417164300",
		"PL61109010140000071219812874",
	} {
		_, err := New(ctx, p, compact)
		assert.NoError(t, err, compact)
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	p := testProvider()

	t.Run("round-trips through full validation", func(t *testing.T) {
		v, err := Generate(ctx, p, "DE", "37040044", "532013000")
		require.NoError(t, err)
		assert.Equal(t, "DE89370400440532013000", v.Compact())
		require.NoError(t, v.Validate(ctx))
	})

	t.Run("pads codes into their field widths", func(t *testing.T) {
		v, err := Generate(ctx, p, "DE", "1", "9007")
		require.NoError(t, err)
		bank, err := v.BankCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, "00000001", bank)
		account, err := v.AccountCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0000009007", account)
	})

	t.Run("bank code field spans bank and branch segments", func(t *testing.T) {
		// GB: 4!a bank + 6!n branch. The 10-character code fills both
		// segments of the bank code field.
		v, err := Generate(ctx, p, "GB", "NWBK601613", "31926819")
		require.NoError(t, err)
		assert.Equal(t, "GB29NWBK60161331926819", v.Compact())

		branch, err := v.BranchCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, "601613", branch)
	})

	t.Run("exact field width is accepted unpadded", func(t *testing.T) {
		v, err := Generate(ctx, p, "DE", "37040044", "0532013000")
		require.NoError(t, err)
		assert.Equal(t, "DE89370400440532013000", v.Compact())
	})

	t.Run("one character over the field width is rejected", func(t *testing.T) {
		_, err := Generate(ctx, p, "DE", "370400441", "0532013000")
		assert.ErrorIs(t, err, ErrCodeTooLong)

		_, err = Generate(ctx, p, "DE", "37040044", "05320130001")
		assert.ErrorIs(t, err, ErrCodeTooLong)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, err := Generate(ctx, p, "ZZ", "1", "2")
		assert.ErrorIs(t, err, ErrUnknownCountry)

		_, err = Generate(ctx, p, "D3", "1", "2")
		assert.ErrorIs(t, err, ErrUnknownCountry)
	})
}

func TestFormatted_LastGroupMayBeShort(t *testing.T) {
	ctx := context.Background()
	v, err := New(ctx, testProvider(), "NL91ABNA0417164300")
	require.NoError(t, err)
	assert.Equal(t, "NL91 ABNA 0417 1643 00", v.Formatted())
}
