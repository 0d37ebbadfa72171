package domain

// Discount calculations are pure integer arithmetic on minor units.
// Rounding is half-up, so converting a percentage to a price and back
// reproduces the percentage within +-1.

// PriceFromPercentage returns the discounted price for originalPrice
// reduced by percentage percent, rounded half-up and clamped to >= 0.
func PriceFromPercentage(originalPrice int64, percentage int) (int64, error) {
	if originalPrice <= 0 {
		return 0, &ValidationError{Field: "originalPrice", Reason: "must be positive"}
	}
	if percentage < 0 || percentage > 100 {
		return 0, &ValidationError{Field: "discountPercentage", Reason: "must be between 0 and 100"}
	}
	price := (originalPrice*int64(100-percentage) + 50) / 100
	if price < 0 {
		price = 0
	}
	return price, nil
}

// PercentageFromPrice returns the discount percentage implied by the
// pair of prices, rounded half-up and clamped to [0, 100].
func PercentageFromPrice(originalPrice, discountPrice int64) (int, error) {
	if originalPrice <= 0 {
		return 0, &ValidationError{Field: "originalPrice", Reason: "must be positive"}
	}
	saved := originalPrice - discountPrice
	if saved <= 0 {
		return 0, nil
	}
	pct := (saved*100 + originalPrice/2) / originalPrice
	if pct > 100 {
		pct = 100
	}
	return int(pct), nil
}
