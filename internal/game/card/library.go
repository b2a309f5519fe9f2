package card

import "fmt"

// A biblioteca é o conjunto fixo de cartas do jogo, populada uma única vez
// no início do processo. Depois de InitLibrary ela nunca mais é alterada.
var library map[string]*Card

// definitions descreve todas as cartas conhecidas. A composição do deck
// inicial (7 Copper + 3 Estate) depende de Copper e Estate existirem aqui.
var definitions = []Card{
	{
		Name:           "Copper",
		Types:          []CardType{TypeTreasure},
		Description:    "+1 Coin",
		Cost:           0,
		WinningPoints:  0,
		FrontCardImage: "/images/cards/copper.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Silver",
		Types:          []CardType{TypeTreasure},
		Description:    "+2 Coins",
		Cost:           3,
		WinningPoints:  0,
		FrontCardImage: "/images/cards/silver.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Gold",
		Types:          []CardType{TypeTreasure},
		Description:    "+3 Coins",
		Cost:           6,
		WinningPoints:  0,
		FrontCardImage: "/images/cards/gold.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Estate",
		Types:          []CardType{TypeVictory},
		Description:    "Worth 1 Victory Point",
		Cost:           2,
		WinningPoints:  1,
		FrontCardImage: "/images/cards/estate.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Duchy",
		Types:          []CardType{TypeVictory},
		Description:    "Worth 3 Victory Points",
		Cost:           5,
		WinningPoints:  3,
		FrontCardImage: "/images/cards/duchy.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Province",
		Types:          []CardType{TypeVictory},
		Description:    "Worth 6 Victory Points",
		Cost:           8,
		WinningPoints:  6,
		FrontCardImage: "/images/cards/province.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Curse",
		Types:          []CardType{TypeCurse},
		Description:    "Worth -1 Victory Point",
		Cost:           0,
		WinningPoints:  -1,
		FrontCardImage: "/images/cards/curse.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Village",
		Types:          []CardType{TypeAction},
		Description:    "+1 Card, +2 Actions",
		Cost:           3,
		WinningPoints:  0,
		FrontCardImage: "/images/cards/village.png",
		BackCardImage:  "/images/cards/back.png",
	},
	{
		Name:           "Smithy",
		Types:          []CardType{TypeAction},
		Description:    "+3 Cards",
		Cost:           4,
		WinningPoints:  0,
		FrontCardImage: "/images/cards/smithy.png",
		BackCardImage:  "/images/cards/back.png",
	},
}

// InitLibrary constrói a biblioteca global a partir das definições.
// Deve ser chamada uma vez no main, antes de qualquer partida começar.
func InitLibrary() error {
	library = make(map[string]*Card, len(definitions))

	for _, def := range definitions {
		c, err := newCard(def)
		if err != nil {
			return err
		}
		if _, dup := library[c.Name]; dup {
			return fmt.Errorf("duplicate card definition: %s", c.Name)
		}
		library[c.Name] = c
	}
	return nil
}

// Get é o acesso público à biblioteca.
func Get(name string) (*Card, error) {
	if c, ok := library[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("card not found: %s", name)
}

// MustGet é um helper para os pontos do código onde a carta pedida faz parte
// do conjunto fixo do jogo; um nome inválido ali é erro de programação.
func MustGet(name string) *Card {
	c, err := Get(name)
	if err != nil {
		panic(err)
	}
	return c
}
