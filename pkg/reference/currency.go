package reference

// Currency is a lower-case ISO 4217 code
type Currency string

const ETB Currency = "etb"

func (c Currency) String() string { return string(c) }
