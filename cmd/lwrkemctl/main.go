package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/kryptco/lwrkem"
	"github.com/kryptco/lwrkem/lwr"
)

func modeFlag(c *cli.Context) (lwr.Mode, error) {
	switch c.String("mode") {
	case "", "fast":
		return lwr.ModeFast, nil
	case "low-ram":
		return lwr.ModeLowRAM, nil
	default:
		return lwr.ModeFast, errors.Errorf("unknown --mode %q, want \"fast\" or \"low-ram\"", c.String("mode"))
	}
}

func readEntropy(c *cli.Context, flagName string) ([32]byte, error) {
	var e [32]byte
	if c.String(flagName) != "" {
		raw, err := os.ReadFile(c.String(flagName))
		if err != nil {
			return e, errors.Wrapf(err, "reading %s", flagName)
		}
		if len(raw) < 32 {
			return e, errors.Errorf("%s must contain at least 32 bytes", flagName)
		}
		copy(e[:], raw[:32])
		return e, nil
	}
	raw, err := lwrkem.RandNBytes(32)
	if err != nil {
		return e, errors.Wrap(err, "reading system entropy")
	}
	copy(e[:], raw)
	return e, nil
}

func selfTestCommand(c *cli.Context) error {
	mode, err := modeFlag(c)
	if err != nil {
		return err
	}
	entropy, err := readEntropy(c, "entropy-file")
	if err != nil {
		return errors.Wrap(err, "self-test")
	}
	if err := lwrkem.SelfTest(entropy, mode); err != nil {
		fmt.Println(lwrkem.Red("self-test failed: " + err.Error()))
		return err
	}
	fmt.Println(lwrkem.Green("self-test ok"))
	return nil
}

func keygenCommand(c *cli.Context) error {
	mode, err := modeFlag(c)
	if err != nil {
		return err
	}
	entropy, err := readEntropy(c, "entropy-file")
	if err != nil {
		return errors.Wrap(err, "keygen")
	}
	pk, sk, err := lwrkem.KeyGen(entropy, mode)
	if err != nil {
		return errors.Wrap(err, "keygen")
	}
	defer sk.Zeroize()

	pkOut := c.String("pk-out")
	if pkOut == "" {
		pkOut = "pk.bin"
	}
	skOut := c.String("sk-out")
	if skOut == "" {
		skOut = "sk.bin"
	}

	pkRaw, _ := pk.MarshalBinary()
	if err := os.WriteFile(pkOut, pkRaw, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", pkOut)
	}
	skRaw, _ := sk.MarshalBinary()
	if err := os.WriteFile(skOut, skRaw, 0600); err != nil {
		return errors.Wrapf(err, "writing %s", skOut)
	}

	fmt.Println(lwrkem.Cyan("public key fingerprint: "), pk.Fingerprint())
	sessionID, err := pk.SessionID()
	if err == nil {
		fmt.Println(lwrkem.Magenta("session id:            "), sessionID.String())
	}
	return nil
}

func encapsCommand(c *cli.Context) error {
	mode, err := modeFlag(c)
	if err != nil {
		return err
	}
	pkIn := c.String("pk-in")
	if pkIn == "" {
		pkIn = "pk.bin"
	}
	pkRaw, err := os.ReadFile(pkIn)
	if err != nil {
		return errors.Wrapf(err, "reading %s", pkIn)
	}
	var pk lwrkem.PublicKey
	if err := pk.UnmarshalBinary(pkRaw); err != nil {
		return errors.Wrapf(err, "parsing %s", pkIn)
	}

	entropy, err := readEntropy(c, "entropy-file")
	if err != nil {
		return errors.Wrap(err, "encaps")
	}

	ct, shared, err := lwrkem.Encapsulate(pk, entropy, mode)
	if err != nil {
		return errors.Wrap(err, "encaps")
	}

	ctOut := c.String("ct-out")
	if ctOut == "" {
		ctOut = "ct.bin"
	}
	ctRaw, _ := ct.MarshalBinary()
	if err := os.WriteFile(ctOut, ctRaw, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", ctOut)
	}

	fmt.Println(lwrkem.Cyan("shared secret: "), hex.EncodeToString(shared[:]))
	return nil
}

func decapsCommand(c *cli.Context) error {
	mode, err := modeFlag(c)
	if err != nil {
		return err
	}
	skIn := c.String("sk-in")
	if skIn == "" {
		skIn = "sk.bin"
	}
	skRaw, err := os.ReadFile(skIn)
	if err != nil {
		return errors.Wrapf(err, "reading %s", skIn)
	}
	var sk lwrkem.SecretKey
	if err := sk.UnmarshalBinary(skRaw); err != nil {
		return errors.Wrapf(err, "parsing %s", skIn)
	}
	defer sk.Zeroize()

	ctIn := c.String("ct-in")
	if ctIn == "" {
		ctIn = "ct.bin"
	}
	ctRaw, err := os.ReadFile(ctIn)
	if err != nil {
		return errors.Wrapf(err, "reading %s", ctIn)
	}
	var ct lwrkem.Ciphertext
	if err := ct.UnmarshalBinary(ctRaw); err != nil {
		return errors.Wrapf(err, "parsing %s", ctIn)
	}

	if c.Bool("strict") {
		if lwr.Popcount(ct.Mask) != int(ct.Cnt) {
			fmt.Println(lwrkem.Yellow("warning: ciphertext mask popcount disagrees with cnt field"))
			return lwrkem.ErrMaskCountMismatch
		}
	}

	shared, err := lwrkem.Decapsulate(ct, sk, mode)
	if err != nil {
		return errors.Wrap(err, "decaps")
	}

	fmt.Println(lwrkem.Cyan("shared secret: "), hex.EncodeToString(shared[:]))
	return nil
}

func main() {
	lwrkem.SetupLogging(logging.NOTICE)

	app := cli.NewApp()
	app.Name = "lwrkemctl"
	app.Usage = "exercise the LWR-based KEM: keygen, encaps, decaps, self-test"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "mode",
			Usage: "generator mode: fast or low-ram",
		},
		cli.StringFlag{
			Name:  "entropy-file",
			Usage: "path to a file with at least 32 bytes of entropy (default: crypto/rand)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate a keypair, writing it to --pk-out/--sk-out",
			Action: keygenCommand,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "pk-out", Usage: "public key output path (default pk.bin)"},
				cli.StringFlag{Name: "sk-out", Usage: "secret key output path (default sk.bin)"},
			},
		},
		{
			Name:   "encaps",
			Usage:  "encapsulate against --pk-in, writing the ciphertext to --ct-out",
			Action: encapsCommand,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "pk-in", Usage: "public key input path (default pk.bin)"},
				cli.StringFlag{Name: "ct-out", Usage: "ciphertext output path (default ct.bin)"},
			},
		},
		{
			Name:   "decaps",
			Usage:  "decapsulate --ct-in against --sk-in",
			Action: decapsCommand,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "sk-in", Usage: "secret key input path (default sk.bin)"},
				cli.StringFlag{Name: "ct-in", Usage: "ciphertext input path (default ct.bin)"},
				cli.BoolFlag{Name: "strict", Usage: "reject a ciphertext whose mask popcount disagrees with its cnt field"},
			},
		},
		{
			Name:   "selftest",
			Usage:  "run keygen/encapsulate/decapsulate end to end and report success or mismatch",
			Action: selfTestCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(lwrkem.Red(err.Error()))
		os.Exit(1)
	}
}
