package internal

// IsZeroed returns true if all arguments are set to their zero value. Used
// to detect an all-zero IP/mask/gateway triple, the condition under which
// an IpParameter response reports BlockInfo=IpNotSet.
func IsZeroed[T comparable](a ...T) bool {
	var z T
	for i := range a {
		if a[i] != z {
			return false
		}
	}
	return true
}
