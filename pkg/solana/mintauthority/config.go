package mintauthority

import (
	"crypto/ed25519"

	"github.com/code-payments/mint-authority/pkg/config"
	"github.com/code-payments/mint-authority/pkg/config/env"
	"github.com/code-payments/mint-authority/pkg/config/memory"
	"github.com/code-payments/mint-authority/pkg/config/wrapper"
)

const (
	envConfigPrefix = "MINT_AUTHORITY_"

	ProgramAddressConfigEnvName = envConfigPrefix + "PROGRAM_ADDRESS"
	defaultProgramAddress       = "mntAuthZp7QG5h3b2WgX9qVjH4cYkT8sLrN6eFdUaEy"

	DisableProgramIdCheckConfigEnvName = envConfigPrefix + "DISABLE_PROGRAM_ID_CHECK"
	defaultDisableProgramIdCheck       = false
)

type conf struct {
	programAddress        config.PublicKey
	disableProgramIdCheck config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			programAddress:        env.NewPublicKeyConfig(ProgramAddressConfigEnvName, PROGRAM_ID),
			disableProgramIdCheck: env.NewBoolConfig(DisableProgramIdCheckConfigEnvName, defaultDisableProgramIdCheck),
		}
	}
}

type testOverrides struct {
	programAddress        ed25519.PublicKey
	disableProgramIdCheck bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	var programAddress interface{}
	if len(overrides.programAddress) > 0 {
		programAddress = overrides.programAddress
	}

	return func() *conf {
		return &conf{
			programAddress:        wrapper.NewPublicKeyConfig(memory.NewConfig(programAddress), PROGRAM_ID),
			disableProgramIdCheck: wrapper.NewBoolConfig(memory.NewConfig(overrides.disableProgramIdCheck), defaultDisableProgramIdCheck),
		}
	}
}
