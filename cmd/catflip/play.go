package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sethgrid/catflip/internal/art"
	"github.com/sethgrid/catflip/internal/game"
	"github.com/sethgrid/catflip/internal/pet"
	"github.com/sethgrid/catflip/internal/traits"
	"github.com/sethgrid/catflip/internal/wellbeing"
)

type playOptions struct {
	now       func() time.Time
	wellbeing wellbeing.ComputationMode
	animate   bool
}

const helpText = `Commands:
  pet | feed | punch | bathe   care for your cat (one turn each)
  use <item>                   give an item from your inventory (one turn)
  buy <item>                   buy from the shop
  sell <n>                     sell to buyer n once the round is over
  dispose                      bury a dead cat and get a new one
  status                       show your cat
  shop                         list shop items
  history                      list cats you have sold
  help                         show this help
  quit                         leave
`

type console struct {
	out  io.Writer
	s    *game.Session
	opts playOptions
}

// runPlay is the interactive loop. Simulated time advances by the real time
// that passed between commands.
func runPlay(in io.Reader, out io.Writer, s *game.Session, opts playOptions) error {
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.wellbeing == "" {
		opts.wellbeing = wellbeing.ComputationAverage
	}
	c := &console{out: out, s: s, opts: opts}

	unsubscribe := s.Subscribe(c.onEvent)
	defer unsubscribe()

	fmt.Fprintf(out, "A new cat arrives: %s\n\n", s.Pet().Name)
	c.printStatus()

	scanner := bufio.NewScanner(in)
	last := opts.now()
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		now := opts.now()
		s.Tick(now.Sub(last).Seconds())
		last = now

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := c.dispatch(fields[0], fields[1:]); quit {
			g := s.Game()
			fmt.Fprintf(out, "Bye! You leave with $%d and %d cats sold.\n", g.Money, len(g.SoldCats))
			return nil
		}
	}
}

func (c *console) dispatch(cmd string, args []string) bool {
	arg := func() (string, bool) {
		if len(args) == 0 {
			fmt.Fprintf(c.out, "usage: %s <arg>\n", cmd)
			return "", false
		}
		return args[0], true
	}

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(c.out, helpText)
	case "status":
		c.printStatus()
	case "shop":
		c.printShop()
	case "history":
		c.printHistory()
	case "use":
		id, ok := arg()
		if !ok {
			return false
		}
		if _, err := c.s.UseItem(id); err != nil {
			c.printError(err)
			return false
		}
		c.printStatus()
	case "buy":
		id, ok := arg()
		if !ok {
			return false
		}
		if err := c.s.Purchase(id); err != nil {
			c.printError(err)
			return false
		}
		fmt.Fprintf(c.out, "Bought %s. $%d left.\n", id, c.s.Game().Money)
	case "sell":
		raw, ok := arg()
		if !ok {
			return false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintf(c.out, "✗ %q is not a buyer number\n", raw)
			return false
		}
		if _, err := c.s.SellTo(n - 1); err != nil {
			c.printError(err)
			return false
		}
		c.printStatus()
	case "dispose":
		if _, err := c.s.DisposeDeadPet(); err != nil {
			c.printError(err)
			return false
		}
		c.printStatus()
	default:
		kind, ok := pet.ParseAction(cmd)
		if !ok {
			fmt.Fprintf(c.out, "✗ unknown command %q (try help)\n", cmd)
			return false
		}
		snap, err := c.s.PerformAction(kind)
		if err != nil {
			c.printError(err)
			return false
		}
		if c.opts.animate && c.s.Game().Phase == game.PhaseCaring {
			art.PlayAnimation(c.out, art.Animations[c.frameKey(snap)])
		}
		c.printStatus()
	}
	return false
}

func (c *console) onEvent(e game.Event) {
	switch e.Type {
	case game.EventRoundStarted:
		fmt.Fprintf(c.out, "\nA new cat arrives: %s\n", e.PetName)
	case game.EventPetDied:
		fmt.Fprintf(c.out, "\n%s ate chocolate and died. Type 'dispose' to bury them.\n", e.PetName)
	case game.EventAccessoryEquipped:
		fmt.Fprintf(c.out, "%s is now wearing %s.\n", e.PetName, e.Accessory)
	case game.EventRoundEnded:
		cat := c.s.Catalog()
		fmt.Fprintf(c.out, "\nTime's up! %s has %s.\nOffers:\n", e.PetName, traits.Format(e.Traits, cat.TraitName))
		for i, o := range e.Offers {
			fmt.Fprintf(c.out, "  %d) %-12s $%d", i+1, o.Buyer.Name, o.Total)
			if len(o.Matching) > 0 {
				fmt.Fprintf(c.out, "  ($%d + $%d for %s)", o.Buyer.BasePrice, o.Bonus, traits.Format(o.Matching, cat.TraitName))
			}
			fmt.Fprintln(c.out)
		}
		fmt.Fprintln(c.out, "Type 'sell <n>' to pick a buyer.")
	case game.EventCatSold:
		fmt.Fprintf(c.out, "Sold %s to %s for $%d!\n", e.PetName, e.Buyer, e.Price)
	}
}

func (c *console) frameKey(p game.PetSnapshot) art.FrameKey {
	score := wellbeing.Compute(p.Vitals, c.opts.wellbeing)
	return art.ChooseFrameKey(p.Flags, p.IsDead, score)
}

func (c *console) printStatus() {
	p := c.s.Pet()
	g := c.s.Game()
	score := wellbeing.Compute(p.Vitals, c.opts.wellbeing)

	fmt.Fprintf(c.out, "%s %s  age %ds  turns %d  $%d  [%s]\n",
		wellbeing.Indicator(score, p.IsDead), p.Name, int(p.Age), g.TurnsLeft, g.Money, g.Phase)
	fmt.Fprintln(c.out, art.Decorate(art.GetStaticArt(c.frameKey(p)), p.Accessories))
	for _, stat := range pet.Stats {
		fmt.Fprintf(c.out, "  %-12s %s %3d\n", stat, bar(p.Vitals.Get(stat)), int(p.Vitals.Get(stat)))
	}
	if g.Phase == game.PhaseSelling {
		fmt.Fprintf(c.out, "  traits: %s\n", traits.Format(p.Traits, c.s.Catalog().TraitName))
	}
}

func bar(v float64) string {
	filled := int(v / 10)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

func (c *console) printShop() {
	cat := c.s.Catalog()
	g := c.s.Game()
	fmt.Fprintf(c.out, "You have $%d.\n", g.Money)
	for _, item := range cat.Consumables {
		fmt.Fprintf(c.out, "  %-10s $%-5d owned %d\n", item.ID, item.Cost, g.Inventory[item.ID])
	}
	for _, acc := range cat.Accessories {
		fmt.Fprintf(c.out, "  %-10s $%-5d accessory\n", acc.ID, acc.Cost)
	}
	for _, up := range cat.Upgrades {
		fmt.Fprintf(c.out, "  %-10s $%-5d %d/%d slots\n", up.ID, up.Cost, g.UnlockedTraitSlots, up.Max)
	}
}

func (c *console) printHistory() {
	sold := c.s.Game().SoldCats
	if len(sold) == 0 {
		fmt.Fprintln(c.out, "No cats sold yet.")
		return
	}
	for i, cat := range sold {
		fmt.Fprintf(c.out, "  %d. %s (%s) to %s for $%d\n",
			i+1, cat.Name, traits.Format(traits.FromStrings(cat.Traits), c.s.Catalog().TraitName), cat.Buyer, cat.Price)
	}
}

func (c *console) printError(err error) {
	var rejected *game.ActionRejected
	switch {
	case errors.As(err, &rejected):
		fmt.Fprintf(c.out, "✗ can't do that: %s\n", strings.ReplaceAll(string(rejected.Reason), "_", " "))
	default:
		fmt.Fprintf(c.out, "✗ %v\n", err)
	}
}
