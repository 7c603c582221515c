package seesaw_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/seesaw/internal/balance"
	"github.com/san-kum/seesaw/internal/seesaw"
)

var _ = Describe("Controller", func() {
	var (
		rec   *recorder
		store *seesaw.MemoryStore
		opts  seesaw.Options
		c     *seesaw.Controller
	)

	BeforeEach(func() {
		rec = &recorder{}
		store = &seesaw.MemoryStore{}
		opts = seesaw.Options{
			Geometry:      neverLands(time.Hour),
			FrameInterval: time.Millisecond,
			Weights:       &cycleWeights{weights: []int{4, 7, 2}},
			Store:         store,
			Presenter:     rec,
		}
	})

	JustBeforeEach(func() {
		c = seesaw.New(opts)
	})

	AfterEach(func() {
		c.Close()
	})

	Describe("startup", func() {
		It("starts flat with a fresh next weight when nothing is saved", func() {
			st := c.Snapshot()
			Expect(st.Objects).To(BeEmpty())
			Expect(st.Angle).To(BeZero())
			Expect(st.NextWeight).To(Equal(4))
			Expect(c.Events()).To(ContainElement("New seesaw started"))
		})

		Context("with a saved state", func() {
			BeforeEach(func() {
				Expect(store.Save(seesaw.State{
					Objects: []seesaw.WeightedObject{
						{Weight: 5, Position: -100, Attached: true},
						{Weight: 2, Position: 40, Attached: true},
					},
					NextWeight: 9,
				})).To(Succeed())
			})

			It("restores objects as attached and recomputes aggregates", func() {
				st := c.Snapshot()
				Expect(st.Objects).To(HaveLen(2))
				for _, o := range st.Objects {
					Expect(o.Attached).To(BeTrue())
				}
				Expect(st.LeftTorque).To(Equal(500.0))
				Expect(st.RightTorque).To(Equal(80.0))
				Expect(st.Angle).To(Equal(-30.0))
				Expect(st.NextWeight).To(Equal(9))
				Expect(c.Events()).To(ContainElement("Previous state loaded: 2 objects found"))
			})
		})

		Context("with an unreadable saved state", func() {
			var broken *brokenStore

			BeforeEach(func() {
				broken = &brokenStore{loadErr: seesaw.ErrPersistenceRead}
				opts.Store = broken
			})

			It("falls back to the default state and clears the blob", func() {
				st := c.Snapshot()
				Expect(st.Objects).To(BeEmpty())
				Expect(st.NextWeight).To(Equal(4))
				Expect(broken.cleared).To(Equal(1))
			})
		})
	})

	Describe("Drop", func() {
		It("adds a falling object without moving the bar", func() {
			obj, err := c.Drop(-100)
			Expect(err).NotTo(HaveOccurred())
			Expect(obj.Weight).To(Equal(4))
			Expect(obj.Attached).To(BeFalse())

			st := c.Snapshot()
			Expect(st.Objects).To(HaveLen(1))
			Expect(st.Pending()).To(Equal(1))
			Expect(st.LeftWeight).To(BeZero())
			Expect(st.Angle).To(BeZero())
			Expect(st.NextWeight).To(Equal(7))
		})

		It("rejects positions outside the bar", func() {
			_, err := c.Drop(250)
			Expect(err).To(MatchError(seesaw.ErrOutOfRange))

			var dropErr *seesaw.DropError
			Expect(errors.As(err, &dropErr)).To(BeTrue())
			Expect(dropErr.Position).To(Equal(250.0))

			st := c.Snapshot()
			Expect(st.Objects).To(BeEmpty())
			Expect(st.NextWeight).To(Equal(4))
			Expect(c.Events()).To(ContainElement("Click outside allowed area!"))
		})

		It("rejects invalid weights", func() {
			_, err := c.DropWeighted(0, 11)
			Expect(err).To(MatchError(seesaw.ErrInvalidWeight))
			Expect(c.Snapshot().Objects).To(BeEmpty())
		})

		It("swallows audio failures", func() {
			cue := &brokenCue{}
			c.Close()
			opts.Cue = cue
			c = seesaw.New(opts)

			_, err := c.Drop(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(cue.calls).To(Equal(1))
			Expect(c.Snapshot().Objects).To(HaveLen(1))
		})

		Context("with a cooldown", func() {
			BeforeEach(func() {
				opts.Cooldown = 80 * time.Millisecond
			})

			It("rejects a second drop inside the window", func() {
				_, err := c.Drop(-50)
				Expect(err).NotTo(HaveOccurred())
				Expect(c.CoolingDown()).To(BeTrue())

				_, err = c.Drop(50)
				Expect(err).To(MatchError(seesaw.ErrCooldownActive))
				Expect(c.Snapshot().Objects).To(HaveLen(1))
			})

			It("checks the cooldown before the range", func() {
				_, err := c.Drop(0)
				Expect(err).NotTo(HaveOccurred())
				_, err = c.Drop(999)
				Expect(err).To(MatchError(seesaw.ErrCooldownActive))
			})

			It("accepts drops again once the window closes", func() {
				_, err := c.Drop(-50)
				Expect(err).NotTo(HaveOccurred())

				Eventually(c.Events).Should(ContainElement("You can click again!"))
				Expect(c.CoolingDown()).To(BeFalse())

				_, err = c.Drop(50)
				Expect(err).NotTo(HaveOccurred())
			})

			It("does not start a window for rejected drops", func() {
				_, err := c.Drop(300)
				Expect(err).To(MatchError(seesaw.ErrOutOfRange))
				Expect(c.CoolingDown()).To(BeFalse())
			})
		})

		Context("with a one second cooldown", func() {
			BeforeEach(func() {
				opts.Cooldown = time.Second
			})

			It("phrases the wait in seconds", func() {
				Expect(c.Events()).To(ContainElement("Click cooldown: 1 second (prevents spam)"))

				_, err := c.Drop(-50)
				Expect(err).NotTo(HaveOccurred())
				_, err = c.Drop(50)
				Expect(err).To(MatchError(seesaw.ErrCooldownActive))
				Expect(c.Events()).To(ContainElement("Clicking too fast! Wait 1 second."))
			})
		})

		It("rejects drops after Close", func() {
			c.Close()
			_, err := c.Drop(0)
			Expect(err).To(MatchError(seesaw.ErrClosed))
			Expect(c.Snapshot().Objects).To(BeEmpty())
		})
	})

	Describe("Attach", func() {
		It("recalculates over attached objects and persists", func() {
			obj, err := c.DropWeighted(-100, 5)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.Attach(obj.ID)).To(BeTrue())

			st := c.Snapshot()
			Expect(st.LeftWeight).To(Equal(5.0))
			Expect(st.LeftTorque).To(Equal(500.0))
			Expect(st.RightWeight).To(BeZero())
			Expect(st.Angle).To(Equal(-30.0))
			Expect(rec.Tilts()).To(Equal([]float64{-30}))

			saved, ok, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(saved.LeftTorque).To(Equal(500.0))
			Expect(c.Events()).To(ContainElements("State saved!", "Object hit the bar and attached!"))
		})

		It("is idempotent", func() {
			obj, err := c.DropWeighted(120, 3)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.Attach(obj.ID)).To(BeTrue())
			first := c.Snapshot()

			Expect(c.Attach(obj.ID)).To(BeFalse())
			Expect(c.Snapshot()).To(Equal(first))
			Expect(rec.Attached()).To(Equal(1))
		})

		It("ignores unknown objects", func() {
			Expect(c.Attach(42)).To(BeFalse())
		})

		It("does not count objects that are still falling", func() {
			left, err := c.DropWeighted(-150, 3)
			Expect(err).NotTo(HaveOccurred())
			_, err = c.DropWeighted(150, 3)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.Attach(left.ID)).To(BeTrue())
			st := c.Snapshot()
			Expect(st.LeftTorque).To(Equal(450.0))
			Expect(st.RightTorque).To(BeZero())
			Expect(st.Pending()).To(Equal(1))
		})

		It("balances two equal torques", func() {
			a, _ := c.DropWeighted(150, 3)
			b, _ := c.DropWeighted(-150, 3)
			c.Attach(a.ID)
			c.Attach(b.ID)

			st := c.Snapshot()
			Expect(st.LeftTorque).To(Equal(450.0))
			Expect(st.RightTorque).To(Equal(450.0))
			Expect(st.Angle).To(BeZero())
			Expect(rec.Tilts()).To(Equal([]float64{30, 0}))
		})

		It("skips the tilt signal for changes within tolerance", func() {
			obj, _ := c.DropWeighted(0.5, 1)
			c.Attach(obj.ID)

			st := c.Snapshot()
			Expect(st.Angle).To(BeNumerically("~", 0.05, 1e-9))
			Expect(rec.Tilts()).To(BeEmpty())
		})

		It("keeps state in memory when the store fails", func() {
			c.Close()
			opts.Store = &brokenStore{saveErr: errDisk}
			c = seesaw.New(opts)

			obj, _ := c.DropWeighted(-100, 5)
			Expect(c.Attach(obj.ID)).To(BeTrue())
			Expect(c.Snapshot().LeftWeight).To(Equal(5.0))
			Expect(c.Events()).To(ContainElement(ContainSubstring("Save error")))
		})
	})

	Describe("falling", func() {
		Context("when the bar is never reached", func() {
			BeforeEach(func() {
				opts.Geometry = neverLands(40 * time.Millisecond)
			})

			It("lands the object with the fallback timer", func() {
				_, err := c.DropWeighted(-100, 5)
				Expect(err).NotTo(HaveOccurred())

				Eventually(func() float64 { return c.Snapshot().LeftWeight }).Should(Equal(5.0))
				Expect(c.Snapshot().Pending()).To(BeZero())
			})
		})

		Context("when the object hits the bar", func() {
			BeforeEach(func() {
				opts.Geometry = landsAtOnce(time.Hour)
			})

			It("lands the object on collision before the timer", func() {
				_, err := c.DropWeighted(100, 2)
				Expect(err).NotTo(HaveOccurred())

				Eventually(func() int { return c.Snapshot().Pending() }).Should(BeZero())
				Expect(c.Snapshot().RightTorque).To(Equal(200.0))
			})
		})

		Context("with both observers racing", func() {
			BeforeEach(func() {
				g := landsAtOnce(time.Millisecond)
				opts.Geometry = g
			})

			It("attaches every object exactly once", func() {
				for i := 0; i < 10; i++ {
					_, err := c.DropWeighted(float64(-200+i*40), 10)
					Expect(err).NotTo(HaveOccurred())
				}

				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				Expect(c.Settle(ctx)).To(Succeed())

				Expect(rec.Attached()).To(Equal(10))
				st := c.Snapshot()
				Expect(st.LeftWeight + st.RightWeight).To(Equal(100.0))
			})
		})

		Context("with drops arriving while settling", func() {
			BeforeEach(func() {
				opts.Geometry = landsAtOnce(time.Millisecond)
			})

			It("waits for the late drops too", func() {
				done := make(chan struct{})
				go func() {
					defer GinkgoRecover()
					defer close(done)
					for i := 0; i < 20; i++ {
						_, err := c.DropWeighted(float64(-190+i*20), 1)
						Expect(err).NotTo(HaveOccurred())
						time.Sleep(time.Millisecond)
					}
				}()

				settle := func() error {
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					return c.Settle(ctx)
				}
				for i := 0; i < 20; i++ {
					Expect(settle()).To(Succeed())
				}
				Eventually(done).Should(BeClosed())
				Expect(settle()).To(Succeed())

				Expect(c.Snapshot().Pending()).To(BeZero())
				Expect(rec.Attached()).To(Equal(20))
			})
		})

		It("settles only after falls land", func() {
			c.Close()
			opts.Geometry = neverLands(30 * time.Millisecond)
			c = seesaw.New(opts)

			_, err := c.DropWeighted(10, 1)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			Expect(c.Settle(ctx)).To(Succeed())
			Expect(c.Snapshot().Pending()).To(BeZero())
		})
	})

	Describe("presenter ordering", func() {
		It("renders the newest state when a fall lands during a drop", func() {
			cue := &hookCue{}
			c.Close()
			opts.Cue = cue
			c = seesaw.New(opts)

			first, err := c.DropWeighted(-100, 5)
			Expect(err).NotTo(HaveOccurred())
			cue.hook = func() { c.Attach(first.ID) }

			_, err = c.DropWeighted(100, 3)
			Expect(err).NotTo(HaveOccurred())

			last := rec.Last()
			Expect(last).To(Equal(c.Snapshot()))
			Expect(last.LeftWeight).To(Equal(5.0))
			Expect(last.Pending()).To(Equal(1))
		})

		It("renders the reset state when the presenter resets mid-attach", func() {
			c.Close()
			p := &resetOnAttach{recorder: rec}
			opts.Presenter = p
			c = seesaw.New(opts)
			p.ctrl = c

			obj, err := c.DropWeighted(-100, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Attach(obj.ID)).To(BeTrue())

			last := rec.Last()
			Expect(last.Objects).To(BeEmpty())
			Expect(last).To(Equal(c.Snapshot()))
			Expect(c.Events()).To(Equal([]string{"Seesaw reset!"}))
		})
	})

	Describe("Reset", func() {
		It("clears the bar, the blob and the log", func() {
			obj, _ := c.DropWeighted(-100, 5)
			c.Attach(obj.ID)

			c.Reset()

			st := c.Snapshot()
			Expect(st.Objects).To(BeEmpty())
			Expect(st.Angle).To(BeZero())
			Expect(st.LeftTorque).To(BeZero())
			Expect(balance.ValidWeight(st.NextWeight)).To(BeTrue())

			_, ok, err := store.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			Expect(c.Events()).To(Equal([]string{"Seesaw reset!"}))
		})

		It("turns late attaches into no-ops", func() {
			obj, _ := c.DropWeighted(-100, 5)
			c.Reset()

			Expect(c.Attach(obj.ID)).To(BeFalse())
			Expect(c.Snapshot().Objects).To(BeEmpty())
		})
	})
})
