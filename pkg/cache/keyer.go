package cache

// ResultKeyOpts are the run options that influence an optimisation result.
type ResultKeyOpts struct {
	Passes        int    `json:"passes"`
	CutSize       int    `json:"cut_size"`
	CutLimit      int    `json:"cut_limit"`
	AllowZeroGain bool   `json:"allow_zero_gain"`
	UseDontCares  bool   `json:"use_dont_cares"`
	Strategy      string `json:"strategy"`
	Oracle        string `json:"oracle"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey addresses the optimised form of the network whose content
	// hash is networkHash.
	ResultKey(networkHash string, opts ResultKeyOpts) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:" followed by the hash of networkHash and opts.
func (DefaultKeyer) ResultKey(networkHash string, opts ResultKeyOpts) string {
	return hashKey("result", networkHash, opts)
}
