package profile

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/utils"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Show the family profile." default:"1"`
	Edit ProfileEditCmd `cmd:"" help:"Edit the family profile interactively."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Profile"))
	if profile.FirstName == "" {
		fmt.Println("No profile set. Run 'foyer profile edit' first.")
		return nil
	}

	fmt.Printf("Name: %s\n", profile.FirstName)
	if profile.Spouse != "" {
		fmt.Printf("Spouse: %s\n", profile.Spouse)
	}
	if profile.MarriageDate != nil {
		fmt.Printf("Married: %s\n", utils.DateKey(*profile.MarriageDate))
	}
	for _, child := range profile.Children {
		fmt.Printf("%s %s (born %s)\n", cli.BulletStyle.Render("•"), child.Name, utils.DateKey(child.BirthDate))
	}
	return nil
}

type ProfileEditCmd struct{}

func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}

	var marriageDate string
	if profile.MarriageDate != nil {
		marriageDate = utils.DateKey(*profile.MarriageDate)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your first name").
				Value(&profile.FirstName),
			huh.NewInput().
				Title("Spouse (leave empty if none)").
				Value(&profile.Spouse),
			huh.NewInput().
				Title("Marriage date (YYYY-MM-DD, optional)").
				Value(&marriageDate).
				Validate(validateOptionalDate),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if marriageDate != "" {
		parsed, err := time.Parse(constants.DateFormat, marriageDate)
		if err != nil {
			return fmt.Errorf("invalid marriage date: %w", err)
		}
		profile.MarriageDate = &parsed
	} else {
		profile.MarriageDate = nil
	}

	for {
		var addChild bool
		prompt := "Add a child?"
		if len(profile.Children) > 0 {
			prompt = "Add another child?"
		}
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title(prompt).Value(&addChild),
		))
		if err := confirm.Run(); err != nil {
			return err
		}
		if !addChild {
			break
		}

		var name, birth string
		childForm := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Child's name").Value(&name),
			huh.NewInput().Title("Birth date (YYYY-MM-DD)").Value(&birth).Validate(validateDate),
		))
		if err := childForm.Run(); err != nil {
			return err
		}

		birthDate, err := time.Parse(constants.DateFormat, birth)
		if err != nil {
			return fmt.Errorf("invalid birth date: %w", err)
		}
		profile.Children = append(profile.Children, models.Child{Name: name, BirthDate: birthDate})
	}

	if err := ctx.Store.SaveProfile(profile); err != nil {
		return err
	}

	if err := ctx.Reschedule(); err != nil {
		return err
	}

	fmt.Println("Profile saved.")
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return validateDate(s)
}
